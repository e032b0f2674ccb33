package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c12h/vcsave-tools/vcsave"
	"github.com/c12h/vcsave-tools/vcsave/vcsavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSave(t *testing.T, dir string, slot vcsave.SlotNum, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, vcsave.SlotFileName(slot))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCheckAllGood(t *testing.T) {
	dir := t.TempDir()
	writeSave(t, dir, 1, vcsavetest.Retail())
	writeSave(t, dir, 2, vcsavetest.Steam())

	var out bytes.Buffer
	c := &checker{verbose: true, out: &out}
	require.NoError(t, c.check(dir))

	assert.Empty(t, c.problems)
	assert.Equal(t,
		" Found 2 save files\n"+
			"       1 Retail\n"+
			"       2 Steam\n"+
			" No problems found\n",
		out.String())
}

func TestCheckReportsProblems(t *testing.T) {
	dir := t.TempDir()
	bad := vcsavetest.Retail()
	bad[200]++
	writeSave(t, dir, 3, bad)
	writeSave(t, dir, 1, vcsavetest.Android())
	writeSave(t, dir, 2, vcsavetest.Retail()[:100])

	var out bytes.Buffer
	c := &checker{out: &out}
	require.NoError(t, c.check(dir))

	require.Len(t, c.problems, 3)
	assert.Equal(t, unsupported, c.problems[0].kind)
	assert.Equal(t, badSave, c.problems[1].kind)
	assert.Equal(t, badSave, c.problems[2].kind)
	assert.Contains(t, out.String(), " Found 3 problems\n")
	assert.Contains(t, out.String(), "slot 1: Android save cannot be converted")
	assert.Contains(t, out.String(), "slot 3: ")
	assert.Contains(t, out.String(), "checksum")
}

func TestCheckBackups(t *testing.T) {
	dir := t.TempDir()
	writeSave(t, dir, 1, vcsavetest.Retail())
	stale := writeSave(t, dir, 2, vcsavetest.Retail())
	fresh := writeSave(t, dir, 3, vcsavetest.Steam())

	_, err := vcsave.WriteBackup(stale, vcsave.BackupOptions{})
	require.NoError(t, err)
	_, err = vcsave.WriteBackup(fresh, vcsave.BackupOptions{Compress: true})
	require.NoError(t, err)

	// The save in slot 2 changed after it was backed up.
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(stale, later, later))

	var out bytes.Buffer
	c := &checker{checkBackups: true, out: &out}
	require.NoError(t, c.check(dir))

	require.Len(t, c.problems, 2)
	assert.Equal(t, problemInfo{kind: noBackup, slot: 1}, c.problems[0])
	assert.Equal(t, oldBackup, c.problems[1].kind)
	assert.Equal(t, vcsave.SlotNum(2), c.problems[1].slot)
	assert.Contains(t, out.String(), `slot 2: backup "GTAVCsf2.b.bak" may be out of date`)
}

func TestCheckMissingDir(t *testing.T) {
	c := &checker{out: &bytes.Buffer{}}
	assert.Error(t, c.check(filepath.Join(t.TempDir(), "nowhere")))
}
