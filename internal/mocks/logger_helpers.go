package mocks

import "github.com/stretchr/testify/mock"

const maxLogFields = 6

// AllowLogging registers optional expectations for every log level with up to
// maxLogFields fields, for tests that do not assert on log output.
func AllowLogging(l *Logger) *Logger {
	for n := 0; n <= maxLogFields; n++ {
		fields := make([]interface{}, n)
		for i := range fields {
			fields[i] = mock.Anything
		}
		l.EXPECT().Debug(mock.Anything, fields...).Maybe()
		l.EXPECT().Info(mock.Anything, fields...).Maybe()
		l.EXPECT().Warn(mock.Anything, fields...).Maybe()
		l.EXPECT().Error(mock.Anything, fields...).Maybe()
	}
	return l
}
