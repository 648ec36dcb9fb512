package utilities

import (
	"os"
	"path/filepath"
	"time"
)

// CreateLog agrega una línea con hora al archivo dir/prefix_YYYYMMDD.log.
func CreateLog(dir, prefix, message string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	now := time.Now()
	filename := filepath.Join(dir, prefix+"_"+now.Format("20060102")+".log")

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(now.Format("15:04:05") + " - " + message + "\n")
	return err
}
