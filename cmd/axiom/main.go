// cmd/axiom/main.go — interactive shell for the axiom engine
//
// Reads expressions, simplifies them, and prints the result. Binders are
// written in call form:
//
//	> Sum(x^2, x, 0, 4)
//	30
//	> Min(3, n, 7)
//	Min(3, n)
//
// Commands: :latex EXPR, :json EXPR, :quit
//
// Usage:
//
//	go run ./cmd/axiom [-history FILE]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	axiom "github.com/cosmosZhou/sagemath-sub000"
)

func main() {
	historyPath := flag.String("history", defaultHistoryPath(), "readline history file")
	flag.Parse()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeKeyword)

	if f, err := os.Open(*historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(*historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("axiom shell — enter an expression, :latex EXPR, :json EXPR, or :quit")
	for {
		input, err := line.Prompt("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == ":quit" || input == ":q" {
			return
		}
		evalLine(input)
	}
}

func evalLine(input string) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Println("error:", rec)
		}
	}()

	mode := "print"
	switch {
	case strings.HasPrefix(input, ":latex "):
		mode, input = "latex", strings.TrimSpace(strings.TrimPrefix(input, ":latex "))
	case strings.HasPrefix(input, ":json "):
		mode, input = "json", strings.TrimSpace(strings.TrimPrefix(input, ":json "))
	}

	expr, err := parse(input)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}
	out := axiom.DeepSimplify(expr)
	switch mode {
	case "latex":
		fmt.Println(axiom.LaTeX(out))
	case "json":
		s, err := axiom.ToJSON(out)
		if err != nil {
			fmt.Println("json error:", err)
			return
		}
		fmt.Println(s)
	default:
		fmt.Println(axiom.String(out))
	}
}

func completeKeyword(prefix string) []string {
	keywords := []string{
		"Sum(", "Product(", "Integral(", "Min(", "Max(",
		"ArgMin(", "ArgMax(", "Map(", "ForAll(", "Exists(", "delta(",
		":latex ", ":json ", ":quit",
	}
	i := strings.LastIndexAny(prefix, " (,+-*/^<>=")
	head, word := prefix[:i+1], prefix[i+1:]
	if word == "" {
		return nil
	}
	out := []string{}
	for _, k := range keywords {
		if strings.HasPrefix(k, word) {
			out = append(out, head+k)
		}
	}
	return out
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".axiom_history"
	}
	return filepath.Join(home, ".axiom_history")
}
