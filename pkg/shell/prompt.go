package shell

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	sfcore "github.com/natserract/sfcli/pkg/salesforce/core"
	"golang.org/x/term"
)

// TerminalSecretReader reads a secret from stdin without echoing when stdin
// is a terminal. Piped input falls back to a plain line read so the tool
// stays scriptable.
func TerminalSecretReader() sfcore.SecretReader {
	return func(prompt string) (string, error) {
		fmt.Print(prompt)

		if term.IsTerminal(int(syscall.Stdin)) {
			secretBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return "", fmt.Errorf("failed to read secret: %w", err)
			}
			fmt.Println() // newline after hidden input
			return strings.TrimSpace(string(secretBytes)), nil
		}

		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(line), nil
	}
}
