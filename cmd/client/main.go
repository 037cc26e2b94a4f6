package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alatem/alatem/internal/client"
	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/pkg/logger"
	"github.com/joho/godotenv"
)

const requestTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	defaultProfile := "profile.json"
	if home, err := os.UserHomeDir(); err == nil {
		defaultProfile = filepath.Join(home, ".alatem", "profile.json")
	}

	serverURL := flag.String("server", os.Getenv("ALATEM_SERVER_URL"), "backend base URL (required)")
	profilePath := flag.String("profile", defaultProfile, "path to the local profile file")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	if *serverURL == "" {
		fmt.Fprintln(os.Stderr, "error: backend URL is required (-server flag or ALATEM_SERVER_URL)")
		os.Exit(1)
	}

	log := logger.New(*logLevel)

	store := client.NewProfileStore(*profilePath)
	api := client.NewClient(strings.TrimRight(*serverURL, "/"), requestTimeout, log)
	location := client.NewEnvLocationProvider()
	flow := client.NewFlow(store, api, location, log)
	viewer := client.NewHistoryViewer(api, log)

	stdin := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	printState(flow)
	for {
		fmt.Print("> ")
		if !stdin.Scan() {
			return
		}
		line := strings.TrimSpace(stdin.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "status":
			printState(flow)
		case "register":
			runRegister(ctx, flow, stdin)
		case "verify":
			if len(fields) != 2 {
				fmt.Println("usage: verify <code>")
				continue
			}
			runVerify(ctx, flow, fields[1])
		case "resend":
			if err := flow.Resend(ctx); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Println("A new code was sent.")
			if otp := flow.DebugOTP(); otp != "" {
				fmt.Printf("debug otp: %s\n", otp)
			}
		case "history":
			runHistory(ctx, flow, viewer)
		case "areas":
			for _, area := range models.Areas {
				fmt.Printf("  %s (%s)\n", area, models.FormatAreaName(area))
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("commands: status, register, verify <code>, resend, history, areas, quit")
		}
	}
}

func printState(flow *client.Flow) {
	switch flow.State() {
	case client.StateSuccess:
		profile := flow.Profile()
		fmt.Printf("Byenveni, %s! You are receiving alerts for %s.\n", profile.Name, models.FormatAreaName(profile.Area))
	case client.StateVerify:
		fmt.Println("A verification code was sent to your phone. Use: verify <code>")
	default:
		fmt.Println("Welcome to Alatem. Use: register")
	}
}

func runRegister(ctx context.Context, flow *client.Flow, stdin *bufio.Scanner) {
	flow.Begin()

	name := prompt(stdin, "Name: ")
	phone := prompt(stdin, "Phone: ")
	area := strings.ToUpper(prompt(stdin, "Area code: "))

	if err := flow.SubmitRegistration(ctx, name, phone, area); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Println("Registered. A verification code was sent to your phone.")
	if otp := flow.DebugOTP(); otp != "" {
		fmt.Printf("debug otp: %s\n", otp)
	}
}

func runVerify(ctx context.Context, flow *client.Flow, code string) {
	if err := flow.SubmitCode(ctx, code); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Println("Phone verified. You will now receive alerts for your area.")
}

func runHistory(ctx context.Context, flow *client.Flow, viewer *client.HistoryViewer) {
	profile := flow.Profile()
	if profile == nil {
		fmt.Println("Register first to pick an area.")
		return
	}

	alerts := viewer.Fetch(ctx, profile.Area, 50)
	if len(alerts) == 0 {
		fmt.Println("No alerts for your area yet.")
		return
	}
	for _, alert := range alerts {
		marker := ""
		if alert.IsDemo {
			marker = " [demo]"
		}
		fmt.Printf("%s  %-15s %s%s\n", alert.Timestamp.Local().Format("2006-01-02 15:04"), alert.AlertType, alert.Message, marker)
	}
}

func prompt(stdin *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !stdin.Scan() {
		return ""
	}
	return strings.TrimSpace(stdin.Text())
}
