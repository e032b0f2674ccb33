package main

import (
	"fmt"
	"io"
	"os"

	"github.com/c12h/vcsave-tools/config"
	"github.com/c12h/vcsave-tools/diags"
	"github.com/c12h/vcsave-tools/vcsave"
	"github.com/docopt/docopt-go"
	"github.com/sirupsen/logrus"
)

/*=================================== CLI ====================================*/

const VERSION = "0.1"

const USAGE = `Usage:
  vc-save-convert [-y] [-z] [--to=<variant>] [--config=<file>] [-v | -d] <save-file>
  vc-save-convert --restore=<backup> [--config=<file>] [-v | -d] <save-file>
  vc-save-convert (-h | --help  |  --version)

Convert a GTA: Vice City save between the Retail and Steam releases of the PC
game.  The save is backed up first (to <save-file>.bak by default), then
overwritten with the converted version.

Options:
  -y, --yes           Convert without asking first
  -z, --compress      Write an LZ4-compressed backup (<save-file>.bak.lz4)
  --to=<variant>      Refuse to convert unless the result would be this variant
                      ("retail" or "steam")
  --config=<file>     Read settings from this TOML file
                      (default: ~/.config/vcsave-tools/config.toml)
  --restore=<backup>  Check a backup and put it in place of <save-file>,
                      instead of converting
  -v, --verbose       Report each step
  -d, --debug         Output lots of information
`

// options are the settings for one run, from the config file and the
// command line.
type options struct {
	target     vcsave.Variant // Unknown means "whichever is opposite"
	assumeYes  bool
	backupOpts vcsave.BackupOptions
}

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

	if optSpecified("--debug", parsedArgs) {
		cfg.LogLevel = "debug"
	} else if optSpecified("--verbose", parsedArgs) {
		cfg.LogLevel = "info"
	}
	diags.DieIf(diags.SetupLogging(cfg.LogLevel), "")

	savePath := optString("<save-file>", parsedArgs)

	if backupPath := optString("--restore", parsedArgs); backupPath != "" {
		err = vcsave.RestoreBackup(backupPath, savePath)
		diags.DieIf(err, "")
		fmt.Printf("Restored %q from %q\n", savePath, backupPath)
		return
	}

	opts := options{
		assumeYes: cfg.AssumeYes || optSpecified("--yes", parsedArgs),
		backupOpts: vcsave.BackupOptions{
			Suffix:   cfg.BackupSuffix,
			Compress: cfg.CompressBackups || optSpecified("--compress", parsedArgs),
		},
	}
	if to := optString("--to", parsedArgs); to != "" {
		opts.target, err = parseTarget(to)
		diags.DieIf2(err, "usage", "")
	}

	err = run(savePath, opts, os.Stdin, os.Stdout)
	diags.DieIf(err, "")
	os.Exit(diags.ExitStatus(false))
}

func optSpecified(key string, parsedArgs docopt.Opts) bool {
	val, err := parsedArgs.Bool(key)
	if err != nil {
		diags.Die2("BUG", "no key %q in docopt result %+#v", key, parsedArgs)
	}
	return val
}

// optString returns the value of an option or argument, or "" if it was not
// given.
func optString(key string, parsedArgs docopt.Opts) string {
	argsItem, haveItem := parsedArgs[key]
	if !haveItem {
		diags.Die2("BUG", "no key %q in docopt result %+#v", key, parsedArgs)
	}
	switch v := argsItem.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		diags.Die2("BUG", "docopt[%q] == %#v", key, argsItem)
	}
	return ""
}

// parseTarget checks the value of --to, which must name a PC variant.
func parseTarget(name string) (vcsave.Variant, error) {
	v, err := vcsave.ParseVariant(name)
	if err != nil {
		return vcsave.Unknown, err
	}
	if !v.Convertible() {
		return vcsave.Unknown,
			fmt.Errorf("cannot convert to %s saves, only to \"retail\" or \"steam\"", v)
	}
	return v, nil
}

/*============================== Main function ===============================*/

var errAborted = fmt.Errorf("user aborted")

// run loads a save, asks whether to convert it, backs it up and then
// overwrites it with the converted version.
//
// The conversion is done in memory before anything is written, so a save that
// cannot be converted is left alone (and no backup is made).
//
func run(savePath string, opts options, in io.Reader, out io.Writer) error {
	save, err := vcsave.Load(savePath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Successfully loaded %q\n", savePath)

	from := save.Variant
	if !from.Convertible() {
		return &vcsave.UnsupportedVariantError{Variant: from}
	}
	target := opts.target
	if target == vcsave.Unknown {
		target = from.Opposite()
	}
	if target != from.Opposite() {
		return &vcsave.ConversionNotSupportedError{From: from, To: target}
	}

	if !opts.assumeYes {
		question := fmt.Sprintf("%s version detected, convert to %s?", from, target)
		yes, err := confirm(in, out, question)
		if err != nil {
			return err
		}
		if !yes {
			return errAborted
		}
	}

	if err := save.ConvertTo(target); err != nil {
		return err
	}

	backupPath, err := vcsave.WriteBackup(savePath, opts.backupOpts)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Original save backed up to %q\n", backupPath)

	if err := save.Export(savePath); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"path":     savePath,
		"checksum": fmt.Sprintf("%08X", save.Checksum),
	}).Info("wrote converted save")
	fmt.Fprintf(out, "Converted %q to %s\n", savePath, save.Variant)
	return nil
}
