// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package logging

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LogToStderr enables per-operation logging in Timed.
var LogToStderr bool

// New returns a logger entry tagged with app=hashkit. When logFile is set
// the output is JSON appended to that file, otherwise human-readable text
// on stderr. The returned closer releases the log file.
func New(level uint64, logFile string) (*logrus.Entry, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		DisableLevelTruncation: true,
	})
	var closer io.Closer = nopCloser{}
	if logFile != "" {
		// instead write parsable logs for logstash/splunk/etc
		output, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "couldn't open log file %s", logFile)
		}
		logger.SetOutput(output)
		logger.SetFormatter(&logrus.JSONFormatter{})
		closer = output
	}
	logger.SetLevel(logrus.Level(level))

	return logger.WithFields(logrus.Fields{
		"app": "hashkit",
	}), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Timed runs fn and, if LogToStderr is set, logs the operation with its
// duration and error.
func Timed(log *logrus.Entry, op string, fields logrus.Fields, fn func() error) error {
	start := time.Now()

	err := fn()

	if LogToStderr {
		entry := log.WithFields(fields).WithFields(logrus.Fields{
			"op":       op,
			"duration": time.Since(start),
			"error":    err,
		})

		if err != nil {
			entry.Error("operation failed")
		} else {
			entry.Debug("operation done")
		}
	}

	return err
}
