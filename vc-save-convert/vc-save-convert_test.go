package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/c12h/vcsave-tools/vcsave"
	"github.com/c12h/vcsave-tools/vcsave/vcsavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConvertsAfterConfirming(t *testing.T) {
	original := vcsavetest.Retail()
	path := vcsavetest.WriteFile(t, "GTAVCsf1.b", original)

	var out bytes.Buffer
	err := run(path, options{}, strings.NewReader("yes\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Retail version detected, convert to Steam? y/N?")
	assert.Contains(t, out.String(), "backed up to")

	save, err := vcsave.Load(path)
	require.NoError(t, err)
	assert.Equal(t, vcsave.Steam, save.Variant)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, original, backup)
}

func TestRunAborts(t *testing.T) {
	original := vcsavetest.Steam()
	path := vcsavetest.WriteFile(t, "GTAVCsf2.b", original)

	for _, answer := range []string{"n\n", "\n", "", "nope, y\n"} {
		var out bytes.Buffer
		err := run(path, options{}, strings.NewReader(answer), &out)
		assert.ErrorIs(t, err, errAborted, "answer %q", answer)
		assert.Contains(t, out.String(), "Steam version detected, convert to Retail?")
	}

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, got)
	assert.NoFileExists(t, path+".bak")
}

func TestRunAssumeYesCompressed(t *testing.T) {
	path := vcsavetest.WriteFile(t, "GTAVCsf3.b", vcsavetest.Steam())
	opts := options{
		assumeYes:  true,
		target:     vcsave.Retail,
		backupOpts: vcsave.BackupOptions{Compress: true},
	}

	var out bytes.Buffer
	require.NoError(t, run(path, opts, strings.NewReader(""), &out))
	assert.NotContains(t, out.String(), "y/N")

	save, err := vcsave.Load(path)
	require.NoError(t, err)
	assert.Equal(t, vcsave.Retail, save.Variant)

	backup, err := vcsave.ReadBackup(path + ".bak.lz4")
	require.NoError(t, err)
	assert.Equal(t, vcsave.Steam, backup.Variant)
}

func TestRunRefusesWrongTarget(t *testing.T) {
	original := vcsavetest.Steam()
	path := vcsavetest.WriteFile(t, "GTAVCsf4.b", original)

	err := run(path, options{assumeYes: true, target: vcsave.Steam}, strings.NewReader(""), &bytes.Buffer{})
	var notSupported *vcsave.ConversionNotSupportedError
	require.ErrorAs(t, err, &notSupported)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestRunRefusesMobileSaves(t *testing.T) {
	path := vcsavetest.WriteFile(t, "GTAVCsf5.b", vcsavetest.Android())

	err := run(path, options{assumeYes: true}, strings.NewReader(""), &bytes.Buffer{})
	var unsupported *vcsave.UnsupportedVariantError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, vcsave.Android, unsupported.Variant)
	assert.NoFileExists(t, path+".bak")
}

func TestRunReportsBadChecksum(t *testing.T) {
	data := vcsavetest.Retail()
	data[len(data)-1]++
	path := vcsavetest.WriteFile(t, "GTAVCsf6.b", data)

	err := run(path, options{assumeYes: true}, strings.NewReader(""), &bytes.Buffer{})
	var mismatch *vcsave.ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.NotEqual(t, mismatch.Stored, mismatch.Computed)
}

func TestParseTarget(t *testing.T) {
	for name, want := range map[string]vcsave.Variant{
		"steam":  vcsave.Steam,
		"Retail": vcsave.Retail,
	} {
		got, err := parseTarget(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	for _, name := range []string{"unknown", "android", "iOS", "xbox", ""} {
		_, err := parseTarget(name)
		assert.Error(t, err, name)
	}
}

func TestRunConvertsSteamWithOddByteAfterMarker(t *testing.T) {
	base := vcsavetest.Build(vcsavetest.Sizes(), 0x3D)
	path := vcsavetest.WriteFile(t, "GTAVCsf7.b", vcsavetest.SteamFrom(base))

	var out bytes.Buffer
	opts := options{assumeYes: true, target: vcsave.Retail}
	require.NoError(t, run(path, opts, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "to Retail")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, base, got)
}

func TestConfirm(t *testing.T) {
	for answer, want := range map[string]bool{
		"y\n":   true,
		"Y":     true,
		"yes\n": true,
		"n\n":   false,
		"":      false,
		" y\n":  false,
	} {
		got, err := confirm(strings.NewReader(answer), &bytes.Buffer{}, "Go?")
		require.NoError(t, err)
		assert.Equal(t, want, got, "answer %q", answer)
	}
}
