package internal

import (
	"log"
	"os"
)

// FileCreate creates filename for writing, panicking on error.
func FileCreate(filename string) *os.File {
	file, err := os.Create(filename)
	if err != nil {
		log.Panic(err)
	}
	return file
}

// FileOpen opens filename for reading, panicking on error.
func FileOpen(filename string) *os.File {
	file, err := os.Open(filename)
	if err != nil {
		log.Panic(err)
	}
	return file
}

// Close closes f, panicking on error.
func Close(f *os.File) {
	if err := f.Close(); err != nil {
		log.Panic(err)
	}
}

// MkdirAll creates dir and any missing parents, panicking on error.
func MkdirAll(dir string, perm os.FileMode) {
	if err := os.MkdirAll(dir, perm); err != nil {
		log.Panic(err)
	}
}
