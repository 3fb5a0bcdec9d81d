package godedupcleaner

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"sync"
)

const (
	// Buffer sizes for streaming digests, picked by file size: small files
	// finish in one or two reads, large files amortize syscall overhead.
	smallHashBuffer    = 8 * 1024
	largeHashBuffer    = 32 * 1024
	largeFileThreshold = 1024 * 1024
)

// digestFile streams the file through MD5 and returns the hex digest.
func digestFile(path string, size int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	bufSize := smallHashBuffer
	if size >= largeFileThreshold {
		bufSize = largeHashBuffer
	}

	hasher := md5.New()
	buf := make([]byte, bufSize)
	if _, err := io.CopyBuffer(hasher, f, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// hashRecords computes content digests for the given records on a worker
// pool and returns the records that hashed successfully, digests attached.
// A record that cannot be opened or read is dropped from consideration and
// reported through OnError; it never fails the batch.
func hashRecords(records []FileRecord, workers int, callbacks Callbacks) []FileRecord {
	if len(records) == 0 {
		return nil
	}

	taskChan := make(chan FileRecord, 100)
	resultChan := make(chan FileRecord, 100)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range taskChan {
				digest, err := digestFile(record.Path, record.Size)
				if err != nil {
					callbacks.reportError(ErrorTypeHash, record.Path, err)
					continue
				}
				record.Digest = digest
				resultChan <- record
			}
		}()
	}

	go func() {
		for _, record := range records {
			taskChan <- record
		}
		close(taskChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	hashed := make([]FileRecord, 0, len(records))
	for record := range resultChan {
		hashed = append(hashed, record)
	}
	return hashed
}
