package commands

import (
	"os"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// verboseLogger adapts zerolog to the client's Logger interface. It is
// attached to clients when --verbose is set and writes to stderr so that
// command output on stdout stays machine readable.
type verboseLogger struct {
	log zerolog.Logger
}

var _ rabbitmq.Logger = (*verboseLogger)(nil)

func newVerboseLogger() *verboseLogger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: viper.GetBool("no-color")}

	return &verboseLogger{
		log: zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel),
	}
}

func (l *verboseLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *verboseLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *verboseLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *verboseLogger) Error(msg string, fields map[string]interface{}) {
	l.log.Error().Fields(fields).Msg(msg)
}
