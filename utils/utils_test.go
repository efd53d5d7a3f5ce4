package utils

import (
	"FlowVault/config"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	config.InitConfig()
	os.Exit(m.Run())
}
