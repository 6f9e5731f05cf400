package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/wa"
)

// Choice is a top-level menu selection.
type Choice int

const (
	// ChoiceValidate starts a batch validation run.
	ChoiceValidate Choice = iota + 1
	// ChoiceExit leaves the program.
	ChoiceExit
)

// Prompter drives the interactive selection menus over injectable IO, so
// tests can script the conversation.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// MainMenu asks whether to validate or exit.
func (p *Prompter) MainMenu() (Choice, error) {
	for {
		fmt.Fprintln(p.out, "1) Validate numbers")
		fmt.Fprintln(p.out, "2) Exit")
		fmt.Fprint(p.out, "> ")

		line, err := p.readLine()
		if err != nil {
			return ChoiceExit, err
		}

		switch line {
		case "1":
			return ChoiceValidate, nil
		case "2", "q", "exit":
			return ChoiceExit, nil
		default:
			fmt.Fprintln(p.out, "Invalid option.")
		}
	}
}

// ChooseSession offers existing session names plus creating a new one, and
// returns the resolved session name.
func (p *Prompter) ChooseSession(storeDir string) (string, error) {
	sessions, err := wa.ListSessions(storeDir)
	if err != nil {
		return "", err
	}
	sort.Strings(sessions)

	for {
		if len(sessions) > 0 {
			fmt.Fprintln(p.out, "Sessions:")
			for i, s := range sessions {
				fmt.Fprintf(p.out, "%d) %s\n", i+1, s)
			}
		}
		fmt.Fprintln(p.out, "n) New session")
		fmt.Fprint(p.out, "> ")

		line, err := p.readLine()
		if err != nil {
			return "", err
		}

		if line == "n" || line == "N" {
			return p.newSessionName()
		}

		idx, err := strconv.Atoi(line)
		if err == nil && idx >= 1 && idx <= len(sessions) {
			return sessions[idx-1], nil
		}
		fmt.Fprintln(p.out, "Invalid option.")
	}
}

func (p *Prompter) newSessionName() (string, error) {
	for {
		fmt.Fprint(p.out, "Session name (letters, digits, - and _): ")
		name, err := p.readLine()
		if err != nil {
			return "", err
		}
		if wa.ValidSessionName(name) {
			return name, nil
		}
		fmt.Fprintln(p.out, "Invalid name.")
	}
}

// ChooseInputFile lists the candidate .txt files in dir and returns the
// selected path.
func (p *Prompter) ChooseInputFile(dir string) (string, error) {
	candidates, err := listInputFiles(dir)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no .txt input files found in %s", dir)
	}

	for {
		fmt.Fprintln(p.out, "Input files:")
		for i, c := range candidates {
			fmt.Fprintf(p.out, "%d) %s\n", i+1, filepath.Base(c))
		}
		fmt.Fprint(p.out, "> ")

		line, err := p.readLine()
		if err != nil {
			return "", err
		}

		idx, err := strconv.Atoi(line)
		if err == nil && idx >= 1 && idx <= len(candidates) {
			return candidates[idx-1], nil
		}
		fmt.Fprintln(p.out, "Invalid option.")
	}
}

func listInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list input candidates: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
