package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"wiki-chat/internal/models"

	"github.com/rs/zerolog/log"
)

// ErrLineTooLong is reported for an input line over the session's limit.
// The rest of that line is discarded and the session carries on.
var ErrLineTooLong = errors.New("input line too long")

const defaultMaxLine = 1 << 20

type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Session reads one question per line from in and writes replies to out
// until "exit" or end of input.
type Session struct {
	answerer Answerer
	in       *bufio.Reader
	out      io.Writer
	maxLine  int
}

func NewSession(answerer Answerer, in io.Reader, out io.Writer) *Session {
	return &Session{
		answerer: answerer,
		in:       bufio.NewReader(in),
		out:      out,
		maxLine:  defaultMaxLine,
	}
}

// Run returns nil on exit or end of input. Failed questions are shown to the
// user and never end the session; only read/write failures and a cancelled
// ctx do.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "\nType '%s' to end chat.\n", models.ExitCommand)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := fmt.Fprint(s.out, "You: "); err != nil {
			return err
		}

		line, err := s.readLine()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, ErrLineTooLong):
			if err := s.reply("Error: " + err.Error()); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		}

		trimmed := strings.TrimSpace(line)
		if strings.EqualFold(trimmed, models.ExitCommand) {
			return nil
		}
		if trimmed == "" {
			continue
		}

		answer, err := s.answerer.Answer(ctx, line)
		if err != nil {
			log.Debug().Err(err).Int("question_len", len(line)).Msg("Question failed")
			answer = "Error: " + err.Error()
		}
		if err := s.reply(answer); err != nil {
			return err
		}
	}
}

func (s *Session) reply(text string) error {
	_, err := fmt.Fprintf(s.out, "Bot: %s\n", text)
	return err
}

// readLine returns one line without its terminator. Lines longer than
// maxLine are consumed to the end and reported as ErrLineTooLong. io.EOF is
// only returned when nothing was read.
func (s *Session) readLine() (string, error) {
	var (
		buf     []byte
		tooLong bool
		read    bool
	)
	for {
		chunk, isPrefix, err := s.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				break
			}
			return "", err
		}
		read = true

		if !tooLong && len(buf)+len(chunk) <= s.maxLine {
			buf = append(buf, chunk...)
		} else {
			tooLong, buf = true, nil
		}
		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrLineTooLong, s.maxLine)
	}
	return string(buf), nil
}
