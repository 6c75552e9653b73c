package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/letters/internal/config"
	"github.com/f3rmion/letters/internal/decoder"
	"github.com/f3rmion/letters/internal/letters"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetFlags puts every flag of c and its subcommands back to its default
// so that no value carries over from a previous run.
func resetFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(t, sub)
	}
}

// execute runs the root command with args, starting from default flags and
// a fresh viper instance.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)
	viper.Reset()
	bindFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCount(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.txt", "Banana")
	second := writeFile(t, dir, "second.txt", "Ssshh")

	want := "Vowels\na : 3\nTotal: 3\n" +
		"\nDoubled consonants\nhh : 1\nss : 2\nTotal: 3\n"

	for _, args := range [][]string{
		{first, second},
		{"count", first, second},
		{"count", "--parallel", first, second},
	} {
		flags := []string{"--config", dir, "--plain", "--total-label", "Total"}
		out, err := execute(t, append(flags, args...)...)
		require.NoError(t, err)
		assert.Equal(t, want, out)
	}
}

func TestCount_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Style = config.StylePlain
	cfg.TotalLabel = "Sum"
	cfg.Single.Title = ""
	cfg.Double.Title = ""
	require.NoError(t, config.Save(dir, cfg))

	first := writeFile(t, dir, "first.txt", "")
	second := writeFile(t, dir, "second.txt", "Аллея")

	out, err := execute(t, "--config", dir, "--total-label", "", first, second)
	require.NoError(t, err)
	assert.Equal(t, "Sum: 0\n\nлл : 1\nSum: 1\n", out)
}

func TestCount_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "text")
	bad := writeFile(t, dir, "bad.txt", "ok\xc3")

	_, err := execute(t, "--config", dir, good)
	assert.Error(t, err, "one argument")

	_, err = execute(t, "--config", dir, good, filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, decoder.ErrInvalidSource)

	_, err = execute(t, "--config", dir, bad, good)
	assert.ErrorIs(t, err, decoder.ErrMalformedInput)
}

func TestCount_ErrorsNotLogged(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "log.json")
	orig := logPaths
	logPaths = []string{logFile}
	t.Cleanup(func() { logPaths = orig })

	good := writeFile(t, dir, "good.txt", "text")
	_, err := execute(t, "--config", dir, good, filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, decoder.ErrInvalidSource)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Empty(t, string(data))
}

func TestSingleAndDouble(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "text.txt", "Aa bb")
	flags := []string{"--config", dir, "--plain", "--total-label", "Total"}

	out, err := execute(t, append(flags, "single", "--class", "all", path)...)
	require.NoError(t, err)
	assert.Equal(t, "Letters\nA : 1\na : 1\nb : 2\nTotal: 4\n", out)

	// --class from the previous run must not stick.
	out, err = execute(t, append(flags, "single", path)...)
	require.NoError(t, err)
	assert.Equal(t, "Vowels\nA : 1\na : 1\nTotal: 2\n", out)

	out, err = execute(t, append(flags, "double", "--class", "vowels", path)...)
	require.NoError(t, err)
	assert.Equal(t, "Doubled vowels\naa : 1\nTotal: 1\n", out)

	out, err = execute(t, append(flags, "double", "--class", "consonant", path)...)
	require.NoError(t, err)
	assert.Equal(t, "Doubled consonants\nbb : 1\nTotal: 1\n", out)

	_, err = execute(t, append(flags, "double", "--class", "umlaut", path)...)
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	// Twice, so --force from the first round cannot leak into the second.
	for range 2 {
		dir := filepath.Join(t.TempDir(), "letters")

		out, err := execute(t, "--config", dir, "init")
		require.NoError(t, err)
		assert.Contains(t, out, filepath.Join(dir, config.FileName))

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)

		_, err = execute(t, "--config", dir, "init")
		assert.ErrorContains(t, err, "already exists")

		_, err = execute(t, "--config", dir, "init", "--force")
		assert.NoError(t, err)
	}
}

func TestPassTitle(t *testing.T) {
	tests := []struct {
		policy letters.Policy
		class  letters.Class
		want   string
	}{
		{letters.PolicySingle, letters.ClassVowel, "Vowels"},
		{letters.PolicySingle, letters.ClassConsonant, "Consonants"},
		{letters.PolicySingle, letters.ClassAll, "Letters"},
		{letters.PolicyDouble, letters.ClassVowel, "Doubled vowels"},
		{letters.PolicyDouble, letters.ClassConsonant, "Doubled consonants"},
		{letters.PolicyDouble, letters.ClassAll, "Doubled letters"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, passTitle(tt.policy, tt.class))
	}
}
