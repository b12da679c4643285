package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	// ErrPasswordMismatch indicates passwords don't match.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmptyPassword indicates an empty password was entered where one is required.
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// PasswordReader reads passwords without echoing them.
type PasswordReader struct {
	in     io.Reader
	fd     int
	isTTY  bool
	lines  *bufio.Reader
	prompt io.Writer
}

// NewPasswordReader reads from stdin and writes prompts to stderr.
func NewPasswordReader() *PasswordReader {
	return NewPasswordReaderFrom(os.Stdin, os.Stderr)
}

// NewPasswordReaderFrom reads from in and writes prompts to prompt. Echo is
// disabled only when in is a terminal; other readers are read line by line
// so piped input works.
func NewPasswordReaderFrom(in io.Reader, prompt io.Writer) *PasswordReader {
	r := &PasswordReader{in: in, prompt: prompt, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.fd = int(f.Fd())
		r.isTTY = true
	} else {
		r.lines = bufio.NewReader(in)
	}
	return r
}

// ReadPassword prints label and reads one password.
func (r *PasswordReader) ReadPassword(label string) (string, error) {
	_, _ = fmt.Fprint(r.prompt, label)

	if r.isTTY {
		password, err := term.ReadPassword(r.fd)
		_, _ = fmt.Fprintln(r.prompt)
		if err != nil {
			return "", wrapError(err)
		}
		return string(password), nil
	}

	line, err := r.lines.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadNewPassword asks for a password and its confirmation until both match
// and are non-empty. Mismatches and empty entries are reported on the prompt
// writer and asked again.
func (r *PasswordReader) ReadNewPassword(reason string) (string, error) {
	for {
		password, err := r.ReadPassword(fmt.Sprintf("Please enter password%s: ", reason))
		if err != nil {
			return "", err
		}
		if password == "" {
			_, _ = fmt.Fprintln(r.prompt, capitalize(ErrEmptyPassword.Error()))
			continue
		}

		confirm, err := r.ReadPassword(fmt.Sprintf("Please re-enter password%s: ", reason))
		if err != nil {
			return "", err
		}
		if password != confirm {
			_, _ = fmt.Fprintln(r.prompt, capitalize(ErrPasswordMismatch.Error()))
			continue
		}
		return password, nil
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
