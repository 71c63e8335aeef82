package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/terra-clan/interview-console/internal/config"
	"github.com/terra-clan/interview-console/internal/console"
	"github.com/terra-clan/interview-console/internal/identity"
	"github.com/terra-clan/interview-console/pkg/client"
)

func main() {
	// Interactive output goes to stdout; logs stay on stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConsole()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := client.New(cfg.BaseURL, client.WithTimeout(cfg.Timeout))
	session := identity.Static{
		AuthToken:  cfg.AuthToken,
		Privileged: cfg.Admin,
	}
	c := console.New(api, session, session)

	ctx := context.Background()
	fmt.Printf("interview-console connected to %s\n", cfg.BaseURL)

	privileged, err := c.VerifyAccess(ctx)
	if err != nil {
		fmt.Println("error:", c.Err())
	} else if !privileged {
		fmt.Println("read-only session: admin privileges are required to manage questions")
	} else if err := c.LoadQuestions(ctx); err != nil {
		fmt.Println("error:", c.Err())
	} else {
		fmt.Printf("loaded %d questions\n", len(c.Questions()))
	}
	fmt.Println(`type "help" for commands`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if pending := c.PendingDelete(); pending != "" {
			fmt.Printf("confirm delete %s? (yes/no) ", pending)
		} else {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		if pending := c.PendingDelete(); pending != "" {
			switch strings.ToLower(cmd) {
			case "yes", "y":
				if err := c.ConfirmDelete(ctx, pending); err != nil {
					fmt.Println("error:", c.Err())
				} else {
					fmt.Println("question deleted")
				}
			case "no", "n":
				c.CancelDelete()
				fmt.Println("delete cancelled")
			default:
				fmt.Println("please answer yes or no")
			}
			continue
		}

		switch cmd {
		case "help":
			printHelp()
		case "quit", "exit":
			return
		case "reload", "load":
			if err := c.LoadQuestions(ctx); err != nil {
				fmt.Println("error:", c.Err())
			} else {
				fmt.Printf("loaded %d questions\n", len(c.Questions()))
			}
		case "list":
			printQuestions(c)
		case "search":
			c.SetSearch(arg)
			printQuestions(c)
		case "category":
			c.SetCategory(orAll(arg))
			printQuestions(c)
		case "difficulty":
			c.SetDifficulty(orAll(arg))
			printQuestions(c)
		case "clear":
			c.SetSearch("")
			c.SetCategory(console.All)
			c.SetDifficulty(console.All)
			printQuestions(c)
		case "categories":
			fmt.Println(strings.Join(c.Categories(), ", "))
		case "difficulties":
			fmt.Println(strings.Join(c.Difficulties(), ", "))
		case "show":
			token, _ := session.Token(ctx)
			question, err := api.GetQuestion(ctx, arg, token)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			printQuestion(*question)
		case "new":
			c.OpenCreate()
			editDraft(scanner, c)
			submit(ctx, c)
		case "edit":
			target, ok := findQuestion(c, arg)
			if !ok {
				fmt.Println("no such question in the loaded catalog:", arg)
				continue
			}
			c.OpenEdit(target)
			editDraft(scanner, c)
			submit(ctx, c)
		case "delete":
			if _, ok := findQuestion(c, arg); !ok {
				fmt.Println("no such question in the loaded catalog:", arg)
				continue
			}
			c.RequestDelete(arg)
		case "signup":
			result, err := api.Signup(ctx, arg)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("%s (username: %s)\n", result.Message, result.Username)
		default:
			fmt.Printf("unknown command %q, type \"help\"\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Print(`commands:
  list                  show questions matching the current filters
  search <term>         filter by search term (empty to clear)
  category <name>       filter by category ("All" to clear)
  difficulty <level>    filter by difficulty ("All" to clear)
  clear                 reset all filters
  categories            list category options
  difficulties          list difficulty options
  show <id>             fetch a single question from the service
  new                   create a question
  edit <id>             edit a question
  delete <id>           delete a question (asks for confirmation)
  signup <email>        register a new user
  reload                reload the catalog
  quit                  exit
`)
}

func printQuestions(c *console.Console) {
	visible := c.Visible()
	for _, q := range visible {
		fmt.Printf("[%s] (%s/%s) %s\n", q.ID, q.Category, q.Difficulty, q.QuestionText)
	}
	fmt.Printf("showing %d of %d questions\n", len(visible), len(c.Questions()))
}

func printQuestion(q client.Question) {
	fmt.Printf("id:         %s\n", q.ID)
	fmt.Printf("category:   %s\n", q.Category)
	fmt.Printf("competency: %s\n", q.Competency)
	fmt.Printf("difficulty: %s\n", q.Difficulty)
	fmt.Printf("created:    %s\n", q.CreateAt)
	fmt.Printf("question:   %s\n", q.QuestionText)
	if q.ReferenceAnswer != "" {
		fmt.Printf("reference:  %s\n", q.ReferenceAnswer)
	}
}

func findQuestion(c *console.Console, id string) (client.Question, bool) {
	for _, q := range c.Questions() {
		if q.ID == id {
			return q, true
		}
	}
	return client.Question{}, false
}

// editDraft prompts for each draft field; an empty line keeps the current
// value.
func editDraft(scanner *bufio.Scanner, c *console.Console) {
	draft := c.Edit().Draft
	draft.QuestionText = prompt(scanner, "question text", draft.QuestionText)
	draft.Category = prompt(scanner, "category", draft.Category)
	draft.Difficulty = prompt(scanner, "difficulty (Easy/Medium/Hard)", draft.Difficulty)
	draft.ReferenceAnswer = prompt(scanner, "reference answer", draft.ReferenceAnswer)
	c.SetDraft(draft)
}

func prompt(scanner *bufio.Scanner, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !scanner.Scan() {
		return current
	}
	if line := strings.TrimSpace(scanner.Text()); line != "" {
		return line
	}
	return current
}

func submit(ctx context.Context, c *console.Console) {
	if err := c.Submit(ctx); err != nil {
		fmt.Println("error:", c.Err())
		// The line-based prompt re-enters the whole draft on retry, so
		// abandon the session here rather than leaving it dangling.
		c.CloseEdit()
		return
	}
	fmt.Println("saved")
}

func orAll(arg string) string {
	if arg == "" {
		return console.All
	}
	return arg
}
