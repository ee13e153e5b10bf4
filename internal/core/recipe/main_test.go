package recipe

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"recipe-importer/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}
