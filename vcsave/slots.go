package vcsave

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// The PC game keeps up to 8 saves, in files named GTAVCsf1.b to GTAVCsf8.b in
// its user files directory.
//
type SlotNum int

const MaxSlot SlotNum = 8

var reSaveFile = regexp.MustCompile(`^GTAVCsf(\d+)\.b$`)

// SlotFileName returns the file name the game uses for a slot.
func SlotFileName(slot SlotNum) string {
	return "GTAVCsf" + strconv.Itoa(int(slot)) + ".b"
}

// ParseSlotName gets the slot number from a save's file name, if it has the
// form the game uses.
//
func ParseSlotName(name string) (SlotNum, bool) {
	match := reSaveFile.FindStringSubmatch(filepath.Base(name))
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 || n > int(MaxSlot) {
		return 0, false
	}
	return SlotNum(n), true
}

// SaveForSlot maps slot numbers to the pathnames of save files.
type SaveForSlot map[SlotNum]string

// ScanSaveDir finds the save files in a directory.  Anything that is not a
// regular file with a save-file name is ignored.
//
func ScanSaveDir(dirPath string) (SaveForSlot, error) {
	dh, err := os.Open(dirPath)
	if err != nil {
		return nil, ioError("open", dirPath, err)
	}

	allNames, err := dh.Readdirnames(-1)
	dh.Close()
	if err != nil {
		return nil, ioError("read directory", dirPath, err)
	}

	saves := make(SaveForSlot, MaxSlot)
	for _, n := range allNames {
		slot, ok := ParseSlotName(n)
		if !ok {
			continue
		}
		path := filepath.Join(dirPath, n)
		nodeInfo, err := os.Lstat(path)
		if err != nil {
			return nil, ioError("examine", path, err)
		}
		if !nodeInfo.Mode().IsRegular() {
			continue
		}
		saves[slot] = path
	}
	return saves, nil
}
