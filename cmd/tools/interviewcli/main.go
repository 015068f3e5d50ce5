package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ayanpandit/PrepTera/internal/client"
	"github.com/ayanpandit/PrepTera/internal/config"
	"github.com/ayanpandit/PrepTera/internal/frontend"
	"github.com/ayanpandit/PrepTera/internal/model/catalog"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
	"github.com/ayanpandit/PrepTera/internal/voice"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	apiURL := flag.String("api", cfg.Client.APIBaseURL, "backend base URL")
	name := flag.String("name", "", "candidate name")
	role := flag.String("role", "", "job role")
	domain := flag.String("domain", "", "domain for the job role")
	kind := flag.String("type", "", "interview type (Technical or Behavioral)")
	speak := flag.String("speak", "", "text-to-speech command used to narrate questions, e.g. \"espeak -s 150\"")
	startPage := flag.String("page", "#setup", "start page hash (#home or #setup)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{
		StartPage: frontend.RouteFromHash(*startPage),
		Name:      *name,
		Role:      *role,
		Domain:    *domain,
		Type:      *kind,
	}
	if s := voice.ParseCommandSpeaker(*speak); s != nil {
		opts.Speaker = s
	}

	if err := run(ctx, client.New(*apiURL, nil), os.Stdin, os.Stdout, opts); err != nil {
		log.Fatalf("interview failed: %v", err)
	}
}

// backend is the part of the HTTP client the CLI talks to.
type backend interface {
	frontend.API
	Catalog(ctx context.Context) (catalog.Catalog, error)
}

type options struct {
	StartPage frontend.Page
	Name      string
	Role      string
	Domain    string
	Type      string
	// Speaker narrates questions as audio; nil narrates on out.
	Speaker   voice.Speaker
}

// run walks Home, Setup, Interview and Report, reading answers from stdin.
func run(ctx context.Context, api backend, stdin io.Reader, out io.Writer, opts options) error {
	in := bufio.NewReader(stdin)

	var (
		startReq interview.StartRequest
		result   interview.FeedbackResponse
	)
	for current := opts.StartPage; ; {
		switch current {
		case frontend.PageSetup:
			choices, err := api.Catalog(ctx)
			if err != nil {
				log.Printf("[WARN] could not fetch catalog, using built-in options: %v", err)
				choices = catalog.Default()
			}

			form := frontend.NewSetupForm(choices)
			if err := fillForm(form, in, out, opts.Name, opts.Role, opts.Domain, opts.Type); err != nil {
				return fmt.Errorf("setup: %w", err)
			}
			if startReq, err = form.Config(); err != nil {
				return fmt.Errorf("setup: %w", err)
			}
			current = frontend.PageInterview

		case frontend.PageInterview:
			speaker := opts.Speaker
			if speaker == nil {
				speaker = voice.NewTextOutput(out)
			}
			driver := &frontend.Interview{
				API:      api,
				Listener: voice.NewTextInput(in),
				Speaker:  speaker,
				Observer: &printer{w: out, showText: opts.Speaker != nil},
			}

			fmt.Fprintln(out, "Type your answer, then press Enter on an empty line to submit.")
			var err error
			if result, err = driver.Run(ctx, startReq); err != nil {
				return err
			}
			current = frontend.PageReport

		case frontend.PageReport:
			return frontend.RenderReport(out, frontend.ReportData{
				CandidateName: startReq.CandidateName,
				Feedback:      result.Feedback,
				Info:          result.SessionInfo,
			})

		case frontend.PageHome:
			fmt.Fprintln(out, "PrepTera: practise interviews with AI-generated questions and feedback.")
			fmt.Fprint(out, "Press Enter to set up your interview...")
			if _, err := in.ReadString('\n'); err != nil {
				return fmt.Errorf("home: %w", err)
			}
			current = frontend.PageSetup

		default:
			current = frontend.PageHome
		}
	}
}

func fillForm(form *frontend.SetupForm, in *bufio.Reader, out io.Writer, name, role, domain, kind string) error {
	if name == "" {
		var err error
		if name, err = prompt(in, out, "Your name: "); err != nil {
			return err
		}
	}
	form.SetCandidateName(name)

	options := form.Catalog()
	if role == "" {
		names := make([]string, 0, len(options.Roles))
		for _, r := range options.Roles {
			names = append(names, r.Name)
		}
		var err error
		if role, err = choose(in, out, "Job role", names); err != nil {
			return err
		}
	}
	if err := form.SelectJobRole(role); err != nil {
		return err
	}

	if domain == "" {
		var err error
		if domain, err = choose(in, out, "Domain", form.Domains()); err != nil {
			return err
		}
	}
	if err := form.SelectDomain(domain); err != nil {
		return err
	}

	if kind == "" {
		types := make([]string, 0, len(options.InterviewTypes))
		for _, t := range options.InterviewTypes {
			types = append(types, t.Name)
		}
		var err error
		if kind, err = choose(in, out, "Interview type", types); err != nil {
			return err
		}
	}
	return form.SelectInterviewType(kind)
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func choose(in *bufio.Reader, out io.Writer, label string, items []string) (string, error) {
	for {
		fmt.Fprintf(out, "%s:\n", label)
		for i, item := range items {
			fmt.Fprintf(out, "  %d) %s\n", i+1, item)
		}
		answer, err := prompt(in, out, "Choose a number: ")
		if err != nil {
			return "", err
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(items) {
			return items[n-1], nil
		}
		fmt.Fprintln(out, "Invalid choice, try again.")
	}
}

// printer renders interview events on a terminal. The question text itself
// is narrated by the speaker; showText repeats it when narration is audio.
type printer struct {
	w        io.Writer
	showText bool
}

func (p *printer) Question(number, total int, text string) {
	fmt.Fprintf(p.w, "\nProgress: %d of %d (%d%%)\n", number, total, number*100/max(total, 1))
	if p.showText {
		fmt.Fprintln(p.w, text)
	}
}

func (p *printer) Transcript(voice.Transcript) {}

func (p *printer) Notice(message string) {
	fmt.Fprintln(p.w, message)
}

func (p *printer) Failed(err error) {
	fmt.Fprintf(p.w, "Error: %v\n", err)
}

func (p *printer) Completed(interview.FeedbackResponse) {
	fmt.Fprintln(p.w, "\nInterview complete, generating your report...")
}
