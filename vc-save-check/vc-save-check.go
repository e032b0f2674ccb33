package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/c12h/vcsave-tools/config"
	"github.com/c12h/vcsave-tools/diags"
	"github.com/c12h/vcsave-tools/vcsave"
	"github.com/docopt/docopt-go"
	"github.com/sirupsen/logrus"
)

/*=================================== CLI ====================================*/

const VERSION = "0.1"

const USAGE = `Usage:
  vc-save-check [-b] [-v | -d] [--config=<file>] [<saves-dir>]
  vc-save-check (-h | --help  |  --version)

Check the GTA: Vice City saves (GTAVCsf1.b ... GTAVCsf8.b) in a directory:
report any that are damaged or cannot be converted, and optionally any that
have no backup or an out-of-date one.

If no directory is given, use saves_dir from the config file.

Options:
  -b, --backups    Report saves with no backup, or a backup older than the save
  --config=<file>  Read settings from this TOML file
                   (default: ~/.config/vcsave-tools/config.toml)
  -v, --verbose    Report every save found
  -d, --debug      Output lots of information
`

func main() {
	parsedArgs, err :=
		docopt.ParseArgs(USAGE, os.Args[1:], VERSION)
	diags.DieIf2(err, "BUG", "docopt failed: %s", err)

	configPath := optString("--config", parsedArgs)
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	diags.DieIf(err, "")

	debugging := optSpecified("--debug", parsedArgs)
	if debugging {
		cfg.LogLevel = "debug"
	}
	diags.DieIf(diags.SetupLogging(cfg.LogLevel), "")

	savesDir := optString("<saves-dir>", parsedArgs)
	if savesDir == "" {
		savesDir = cfg.SavesDir
	}

	c := &checker{
		checkBackups: optSpecified("--backups", parsedArgs),
		verbose:      debugging || optSpecified("--verbose", parsedArgs),
		backupOpts:   vcsave.BackupOptions{Suffix: cfg.BackupSuffix},
		out:          os.Stdout,
	}
	err = c.check(filepath.Clean(savesDir))
	diags.DieIf(err, "")
	os.Exit(diags.ExitStatus(len(c.problems) > 0))
}

func optSpecified(key string, parsedArgs docopt.Opts) bool {
	val, err := parsedArgs.Bool(key)
	if err != nil {
		diags.Die2("usage", "no key %q in docopt result %+#v", key, parsedArgs)
	}
	return val
}

func optString(key string, parsedArgs docopt.Opts) string {
	switch v := parsedArgs[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		diags.Die2("BUG", "docopt[%q] == %#v", key, v)
	}
	return ""
}

//
/*============================== Main function ===============================*/
//

type problemKind byte
type problemInfo struct {
	kind   problemKind
	slot   vcsave.SlotNum
	detail string
}

const (
	badSave     = problemKind('B')
	unsupported = problemKind('U')
	noBackup    = problemKind('N')
	oldBackup   = problemKind('O')
)

var formatForProblem = map[problemKind]string{
	badSave:     "  slot %d: %s\n",
	unsupported: "  slot %d: %s save cannot be converted\n",
	noBackup:    "  slot %d: no backup%s\n",
	oldBackup:   "  slot %d: backup %s may be out of date\n",
}

type checker struct {
	checkBackups bool
	verbose      bool
	backupOpts   vcsave.BackupOptions
	out          io.Writer
	problems     []problemInfo
}

func (c *checker) check(savesDir string) error {
	saves, err := vcsave.ScanSaveDir(savesDir)
	if err != nil {
		return err
	}
	if c.verbose {
		c.reportCount(len(saves), "save file")
	}

	slots := make([]int, 0, len(saves))
	for slot := range saves {
		slots = append(slots, int(slot))
	}
	sort.Ints(slots)

	for _, n := range slots {
		slot := vcsave.SlotNum(n)
		c.checkSave(slot, saves[slot])
	}

	c.reportProblems()
	return nil
}

func (c *checker) checkSave(slot vcsave.SlotNum, path string) {
	save, err := vcsave.Load(path)
	if err != nil {
		c.recordProblem(badSave, slot, err.Error())
		return
	}
	logrus.WithFields(logrus.Fields{
		"slot":     slot,
		"variant":  save.Variant,
		"checksum": fmt.Sprintf("%08X", save.Checksum),
	}).Debug("checked save")
	if c.verbose {
		fmt.Fprintf(c.out, "%8d %s\n", slot, save.Variant)
	}
	if !save.Variant.Convertible() {
		c.recordProblem(unsupported, slot, save.Variant.String())
	}

	if !c.checkBackups {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		c.recordProblem(badSave, slot, err.Error())
		return
	}
	backupPath, backupTime, err := vcsave.FindBackup(path, c.backupOpts)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.recordProblem(noBackup, slot, "")
		} else {
			c.recordProblem(noBackup, slot, fmt.Sprintf(" (%s)", err))
		}
		return
	}
	if info.ModTime().After(backupTime) {
		c.recordProblem(oldBackup, slot, fmt.Sprintf("%q", filepath.Base(backupPath)))
	}
}

func (c *checker) recordProblem(kind problemKind, slot vcsave.SlotNum, detail string) {
	c.problems = append(c.problems,
		problemInfo{
			kind:   kind,
			slot:   slot,
			detail: detail})
}

func (c *checker) reportProblems() {
	if len(c.problems) == 0 {
		if c.verbose {
			fmt.Fprintf(c.out, " No problems found\n")
		}
		return
	}
	c.reportCount(len(c.problems), "problem")

	sort.SliceStable(c.problems,
		func(i, j int) bool {
			return c.problems[i].slot < c.problems[j].slot
		})

	for _, p := range c.problems {
		fmt.Fprintf(c.out, formatForProblem[p.kind], p.slot, p.detail)
	}
}

func (c *checker) reportCount(n int, noun string) {
	if n == 1 {
		fmt.Fprintf(c.out, " Found one %s\n", noun)
	} else {
		fmt.Fprintf(c.out, " Found %d %ss\n", n, noun)
	}
}
