package service

import (
	"bufio"
	"io"
	"os"

	"comments-contract/types"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBlockLine = 16 * 1024 * 1024

// BlockSource yields blocks in order and io.EOF once exhausted.
type BlockSource interface {
	Next() (*types.Block, error)
}

// FileBlockSource reads one JSON block per line.
type FileBlockSource struct {
	f       *os.File
	scanner *bufio.Scanner
	line    int
}

func OpenBlockLog(path string) (*FileBlockSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open block log")
	}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxBlockLine)
	return &FileBlockSource{f: f, scanner: scanner}, nil
}

func (s *FileBlockSource) Next() (*types.Block, error) {
	for s.scanner.Scan() {
		s.line++
		raw := s.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		block := &types.Block{}
		if err := json.Unmarshal(raw, block); err != nil {
			return nil, errors.Wrapf(err, "block log line %d", s.line)
		}
		return block, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read block log")
	}
	return nil, io.EOF
}

func (s *FileBlockSource) Close() error {
	return s.f.Close()
}
