package amalgam

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// forEachLine streams a file line by line, terminators included, until fn
// returns false or the file ends. The file is closed before returning.
func forEachLine(path string, logger *zap.Logger, fn func(line string) bool) error {
	file, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open input file", zap.String("filePath", path), zap.Error(err))
		return fmt.Errorf("error opening file %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" && !fn(line) {
			return nil
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			logger.Error("Failed to read input file", zap.String("filePath", path), zap.Error(readErr))
			return fmt.Errorf("error reading file %s: %w", path, readErr)
		}
	}
}
