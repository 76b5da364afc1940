package shotredact

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/redactyl/shotredact/internal/config"
	"github.com/redactyl/shotredact/internal/redact"
	"github.com/redactyl/shotredact/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores package flag variables between in-process runs.
func resetFlags() {
	flagConfig, flagJSON, flagNoColor, flagNoUpdateCheck, flagSelfUpdate = "", false, false, false, false
	flagDir, flagBlur, flagBlurRadius = "", false, 0
	flagFillColor, flagTextColor, flagCentering, flagBoxPolicy, flagOnly = "", "", "", "", ""
	flagDryRun, flagNoCache, flagNoAudit, flagFailOnError, flagDetails = false, false, false, false, false
	flagTableYAML, flagTableUnlisted = false, false
	flagHistoryLimit = 10
	cfgOutput, cfgForce, cfgNoTable, cfgBlur = ".shotredact.yml", false, false, false
	cfgDir, cfgBoxPolicy = "screenshots", string(redact.PolicyClamp)
}

// isolate runs the test from an empty working directory with no global
// config, no update checks and a clean flag state.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("CI", "1")
	t.Setenv("NO_COLOR", "1")
	for _, k := range []string{config.EnvDir, config.EnvMode, config.EnvBoxPolicy, config.EnvBlurRadius} {
		t.Setenv(k, "")
	}
	resetFlags()
	t.Cleanup(resetFlags)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPickHelpers(t *testing.T) {
	a, b, empty := "a", "b", ""
	assert.Equal(t, "cli", pickString("cli", &a, &b))
	assert.Equal(t, "b", pickString("", nil, &empty, &b))
	assert.Equal(t, "", pickString("", nil))

	one, two := 1.0, 2.0
	assert.Equal(t, 3.0, pickFloat(3, &one))
	assert.Equal(t, 2.0, pickFloat(0, nil, &two))

	f, tr := false, true
	assert.True(t, pickBool(true, &f))
	assert.False(t, pickBool(false, &f, &tr))
	assert.True(t, pickBool(false, nil, &tr))
	assert.Nil(t, firstBool(nil, nil))
}

func TestResolveSettings_Defaults(t *testing.T) {
	isolate(t)
	s, err := resolveSettings()
	require.NoError(t, err)
	assert.Equal(t, "screenshots", s.engine.Dir)
	assert.Equal(t, redact.ModeFill, s.engine.Redact.Mode)
	assert.Equal(t, redact.PolicyClamp, s.engine.Policy)
	assert.Equal(t, table.Default(), s.engine.Table)
	assert.True(t, s.audit)
}

func TestResolveSettings_Precedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".shotredact.yml"), []byte("dir: local\nmode: blur\nbox_policy: coerce\naudit: false\n"), 0o644))
	explicit := filepath.Join(dir, "explicit.yml")
	require.NoError(t, os.WriteFile(explicit, []byte("dir: explicit\nfill_color: \"#ff0000\"\n"), 0o644))
	t.Setenv(config.EnvBoxPolicy, "strict")

	flagConfig = explicit
	flagCentering = "fixed"
	s, err := resolveSettings()
	require.NoError(t, err)
	assert.Equal(t, "explicit", s.engine.Dir)
	assert.Equal(t, redact.ModeBlur, s.engine.Redact.Mode)
	// the local file outranks the environment
	assert.Equal(t, redact.PolicyCoerce, s.engine.Policy)
	assert.Equal(t, redact.CenterFixed, s.engine.Redact.Centering)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, s.engine.Redact.FillColor)
	assert.False(t, s.audit)

	flagDir = "cli"
	s, err = resolveSettings()
	require.NoError(t, err)
	assert.Equal(t, "cli", s.engine.Dir)
}

func TestResolveSettings_BadFlag(t *testing.T) {
	isolate(t)
	flagBoxPolicy = "loose"
	_, err := resolveSettings()
	assert.Error(t, err)
}

func TestRunCommand_RedactsListedFile(t *testing.T) {
	dir := isolate(t)
	shots := filepath.Join(dir, "shots")
	require.NoError(t, os.MkdirAll(shots, 0o755))
	bg := color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	require.NoError(t, imaging.Save(imaging.New(200, 100, bg), filepath.Join(shots, "shot.png")))
	cfgPath := filepath.Join(dir, "table.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`redactions:
  - file: shot.png
    redactions:
      - box: [0, 0, 150, 60]
        label: Token
  - file: gone.png
    redactions:
      - box: [0, 0, 10, 10]
`), 0o644))

	out, err := execute(t, "run", "--config", cfgPath, "--dir", shots, "--no-audit", "--no-cache")
	require.NoError(t, err)
	assert.Contains(t, out, "📁 Screenshots directory: "+shots)
	assert.Contains(t, out, "✓ Redacted: Token")
	assert.Contains(t, out, "✅ Completed: 1/2 screenshots processed")

	img, err := imaging.Open(filepath.Join(shots, "shot.png"))
	require.NoError(t, err)
	n := imaging.Clone(img)
	assert.Equal(t, redact.DefaultFillColor, n.NRGBAAt(1, 1))
	assert.Equal(t, bg, n.NRGBAAt(180, 80))
}

func TestRunCommand_JSON(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "--json", "--dir", filepath.Join(dir, "missing"), "--only", "07*", "--no-audit")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 1`)
	assert.Contains(t, out, `"succeeded": 0`)
	assert.NotContains(t, out, "Screenshot Redaction")
}

func TestTableCommand_YAML(t *testing.T) {
	isolate(t)
	out, err := execute(t, "table", "--yaml", "--only", "07*")
	require.NoError(t, err)
	assert.Contains(t, out, "redactions:")
	assert.Contains(t, out, "sk-proj-YOUR_API_KEY_HERE")
	assert.NotContains(t, out, "08_openai")
}

func TestConfigInit_WritesLoadableFile(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "out.yml")
	_, err := execute(t, "config", "init", "--output", p)
	require.NoError(t, err)

	fc, err := config.LoadFile(p)
	require.NoError(t, err)
	assert.Len(t, fc.Redactions, len(table.Default()))
	require.NotNil(t, fc.FillColor)
	assert.Equal(t, "#282828", *fc.FillColor)

	_, err = execute(t, "config", "init", "--output", p)
	assert.Error(t, err)
}

func TestHistoryCommand_Empty(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "history", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")
}
