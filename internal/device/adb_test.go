package device

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/humanswipe/api/schemas"
	"github.com/xkilldash9x/humanswipe/internal/config"
	"github.com/xkilldash9x/humanswipe/internal/gesture"
	"go.uber.org/zap"
)

// TestHelperProcess stands in for the adb binary. It prints its arguments one
// per line, or HELPER_OUTPUT when set, and exits with HELPER_EXIT_CODE.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if os.Getenv("HELPER_HANG") == "1" {
		time.Sleep(5 * time.Second)
		os.Exit(0)
	}

	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}

	if out := os.Getenv("HELPER_OUTPUT"); out != "" {
		fmt.Fprint(os.Stdout, out)
	} else {
		fmt.Fprint(os.Stdout, strings.Join(args, "\n"))
	}

	var exitCode int
	fmt.Sscanf(os.Getenv("HELPER_EXIT_CODE"), "%d", &exitCode)
	os.Exit(exitCode)
}

type helperOpts struct {
	output   string
	exitCode int
	hang     bool
}

func mockExecCommandContext(t *testing.T, opts helperOpts) {
	t.Helper()
	original := execCommandContext
	t.Cleanup(func() { execCommandContext = original })

	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := []string{"-test.run=TestHelperProcess", "--"}
		cs = append(cs, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		cmd.Env = append(cmd.Env, fmt.Sprintf("HELPER_EXIT_CODE=%d", opts.exitCode))
		if opts.output != "" {
			cmd.Env = append(cmd.Env, "HELPER_OUTPUT="+opts.output)
		}
		if opts.hang {
			cmd.Env = append(cmd.Env, "HELPER_HANG=1")
		}
		return cmd
	}
}

func testDeviceConfig() config.DeviceConfig {
	return config.DeviceConfig{ADBPath: "adb", ScreenWidth: 1080, ScreenHeight: 2400, Timeout: 5 * time.Second}
}

func TestMotionScript(t *testing.T) {
	points := []schemas.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}
	want := "input motionevent DOWN 1 2" +
		";sleep 0.150;input motionevent MOVE 3 4" +
		";sleep 0.150;input motionevent MOVE 5 6" +
		";input motionevent UP 5 6"
	assert.Equal(t, want, MotionScript(300, points))
}

func TestADB_Perform(t *testing.T) {
	t.Run("builds a single shell invocation", func(t *testing.T) {
		var captured []string
		original := execCommandContext
		t.Cleanup(func() { execCommandContext = original })
		execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
			captured = append([]string{name}, args...)
			return exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		}

		cfg := testDeviceConfig()
		cfg.ADBPath = "/opt/platform-tools/adb"
		adb := NewADBForSerial(cfg, "emulator-5554", zap.NewNop())
		points := []schemas.Point{{X: 500, Y: 1400}, {X: 525, Y: 600}}

		require.NoError(t, adb.Perform(context.Background(), 250, points))
		require.Len(t, captured, 5)
		assert.Equal(t, []string{"/opt/platform-tools/adb", "-s", "emulator-5554", "shell"}, captured[:4])
		assert.Equal(t, MotionScript(250, points), captured[4])
		assert.Equal(t, "emulator-5554", adb.Serial())
	})

	t.Run("omits -s without a serial", func(t *testing.T) {
		mockExecCommandContext(t, helperOpts{})
		adb := NewADB(testDeviceConfig(), nil)
		// The helper echoes its arguments; success is all Perform reports.
		require.NoError(t, adb.Perform(context.Background(), 100, []schemas.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}))
	})

	t.Run("wraps command failure", func(t *testing.T) {
		mockExecCommandContext(t, helperOpts{output: "error: device offline", exitCode: 1})
		adb := NewADB(testDeviceConfig(), zap.NewNop())

		err := adb.Perform(context.Background(), 100, []schemas.Point{{X: 1, Y: 1}, {X: 2, Y: 2}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "adb shell failed")
		assert.Contains(t, err.Error(), "device offline")
	})

	t.Run("respects the timeout", func(t *testing.T) {
		mockExecCommandContext(t, helperOpts{hang: true})
		cfg := testDeviceConfig()
		cfg.Timeout = 200 * time.Millisecond
		adb := NewADB(cfg, zap.NewNop())

		start := time.Now()
		err := adb.Perform(context.Background(), 10, []schemas.Point{{X: 1, Y: 1}, {X: 2, Y: 2}})
		require.Error(t, err)
		assert.Less(t, time.Since(start), 4*time.Second, "the hung process must be killed")
	})

	t.Run("rejects single point paths", func(t *testing.T) {
		adb := NewADB(testDeviceConfig(), zap.NewNop())
		err := adb.Perform(context.Background(), 100, []schemas.Point{{X: 1, Y: 1}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least two points")
	})
}

func TestADB_ScreenSize(t *testing.T) {
	t.Run("physical size", func(t *testing.T) {
		mockExecCommandContext(t, helperOpts{output: "Physical size: 1080x2400\n"})
		screen, err := NewADB(testDeviceConfig(), zap.NewNop()).ScreenSize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, gesture.Screen{Width: 1080, Height: 2400}, screen)
	})

	t.Run("override wins", func(t *testing.T) {
		mockExecCommandContext(t, helperOpts{output: "Physical size: 1440x3200\nOverride size: 1080x2400\n"})
		screen, err := NewADB(testDeviceConfig(), zap.NewNop()).ScreenSize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, gesture.Screen{Width: 1080, Height: 2400}, screen)
	})
}

func TestParseScreenSize(t *testing.T) {
	_, err := parseScreenSize("wm: command not found")
	assert.Error(t, err)

	_, err = parseScreenSize("Physical size: 0x2400")
	assert.Error(t, err)
}
