/*
Copyright © 2021 the pmcpost authors.
This file is part of pmcpost.

pmcpost is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

pmcpost is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with pmcpost.  If not, see <http://www.gnu.org/licenses/>.
*/

package pmcutil

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Log receives status messages from the commands.
var Log logrus.FieldLogger

func init() {
	logger := logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	Log = logger
}

// setLogLevel sets the minimum level of messages to be logged.
func setLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("pmcpost: invalid log level: %v", err)
	}
	logrus.SetLevel(lvl)
	return nil
}

// logChan returns a channel whose messages are logged at the info level,
// and a function that closes it once all messages have been logged.
func logChan() (chan string, func()) {
	c := make(chan string)
	done := make(chan struct{})
	go func() {
		for msg := range c {
			Log.Info(msg)
		}
		close(done)
	}()
	return c, func() {
		close(c)
		<-done
	}
}
