package output

import (
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

// ConsoleOutputRepository prints output values to a writer, typically stdout,
// and reports failures through the logger.
type ConsoleOutputRepository struct {
	writer io.Writer
}

// NewConsoleOutputRepository creates an output repository printing to writer.
func NewConsoleOutputRepository(writer io.Writer) *ConsoleOutputRepository {
	return &ConsoleOutputRepository{writer: writer}
}

func (r *ConsoleOutputRepository) SetOutput(_, value string) error {
	_, err := fmt.Fprintln(r.writer, value)
	return err
}

func (r *ConsoleOutputRepository) Fail(message string) {
	logger.Error(message)
}

var _ repositories.OutputRepository = (*ConsoleOutputRepository)(nil)
