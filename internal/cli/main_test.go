package cli

import (
	"os"
	"testing"

	"github.com/agbru/infinite/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetTheme("none")
	os.Exit(m.Run())
}
