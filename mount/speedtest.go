package mount

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mwantia/kvfs/data"
)

const (
	speedTestDirectory = "speedtest"
	speedTestPrefix    = "test"
	speedTestLargeFile = "speed"
	speedTestSeed      = "ABCDEFGHIJ"
)

// SpeedTest creates a speedtest directory below cwd and fills it with empty files.
// All entries pass through the regular policy checks.
func (fs *Filesystem) SpeedTest(ctx context.Context) (SpeedReport, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.hooks.Allow(OpMakeDirectory, speedTestDirectory); err != nil {
		return SpeedReport{}, err
	}
	if err := fs.hooks.Allow(OpMakeFile, speedTestPrefix); err != nil {
		return SpeedReport{}, err
	}

	dir, err := fs.createDirectoryUnsafe(ctx, fs.cwd, speedTestDirectory, data.EntryDirectory, 0)
	if err != nil {
		return SpeedReport{}, err
	}

	start, begin := fs.cycles.Cycles(), time.Now()
	for n := 1; n <= fs.speedTestFiles; n++ {
		if err := ctx.Err(); err != nil {
			return SpeedReport{}, err
		}
		if _, err := fs.createFileUnsafe(ctx, dir, fmt.Sprintf("%s%d", speedTestPrefix, n)); err != nil {
			return SpeedReport{}, err
		}
	}

	report := SpeedReport{
		Entries: fs.speedTestFiles,
		Cycles:  fs.cycles.Cycles() - start,
		Elapsed: time.Since(begin),
	}

	fs.log.Debug("Speedtest created %d files in %s", report.Entries, report.Elapsed)
	return report, nil
}

// SpeedTestLarge writes one large file named speed into cwd.
func (fs *Filesystem) SpeedTestLarge(ctx context.Context) (SpeedReport, error) {
	content := speedTestSeed
	for i := 0; i < fs.speedTestDoublings; i++ {
		content = strings.Repeat(content, 2)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.hooks.Allow(OpMakeFile, speedTestLargeFile); err != nil {
		return SpeedReport{}, err
	}
	if err := fs.hooks.Allow(OpWrite, speedTestLargeFile); err != nil {
		return SpeedReport{}, err
	}

	start, begin := fs.cycles.Cycles(), time.Now()

	ino, err := fs.createFileUnsafe(ctx, fs.cwd, speedTestLargeFile)
	if err != nil {
		return SpeedReport{}, err
	}
	if err := fs.storeContentUnsafe(ctx, ino, speedTestLargeFile, []byte(content)); err != nil {
		return SpeedReport{}, err
	}

	report := SpeedReport{
		Entries: 1,
		Bytes:   len(content),
		Cycles:  fs.cycles.Cycles() - start,
		Elapsed: time.Since(begin),
	}

	fs.log.Debug("Speedtest wrote %d bytes in %s", report.Bytes, report.Elapsed)
	return report, nil
}
