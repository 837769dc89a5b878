package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ulagbulag-village/noah-cloud/netrole"
	"github.com/ulagbulag-village/noah-cloud/network"
	"github.com/ulagbulag-village/noah-cloud/store"
	"github.com/ulagbulag-village/noah-cloud/system"
)

// goreleaser will replace version with Git version. You can also pass
// version into the go build:
//   go build -ldflags="-X main.version=1.2.3"
var version = "Development"

const defaultConfigPath = "/etc/noah/network.yaml"

func main() {
	// global options
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagVersion := flags.Bool("version", false, "Print app version")
	flags.Usage = func() {
		fmt.Println("usage: noahnet [OPTION]... COMMAND [OPTION]...")
		fmt.Println("Global options:")
		flags.PrintDefaults()
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println("  - migrate (reconcile the primary interface role, default)")
		fmt.Println("  - inventory (print discovered network interfaces)")
		fmt.Println("  - history (print past migrations from the journal)")
	}

	flags.Parse(os.Args[1:])

	if *flagVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// extract sub command and its arguments
	args := flags.Args()

	if len(args) < 1 {
		// run migrate command by default
		args = []string{"migrate"}
	}

	switch args[0] {
	case "migrate":
		if err := runMigrate(args[1:]); err != nil {
			log.Fatal("Migration failed: ", err)
		}
	case "inventory":
		if err := runInventory(); err != nil {
			log.Fatal("Inventory failed: ", err)
		}
	case "history":
		if err := runHistory(args[1:]); err != nil {
			log.Fatal("History failed: ", err)
		}
	default:
		log.Fatal("Unknown command; options: migrate, inventory, history")
	}
}

func runMigrate(args []string) error {
	flags := flag.NewFlagSet("migrate", flag.ExitOnError)
	flagConfig := flags.String("config", defaultConfigPath, "Config file path")
	flagDryRun := flags.Bool("dry-run", false, "Plan only, do not modify anything")
	flagNoReboot := flags.Bool("no-reboot", false, "Apply but do not restart the system")
	flagSyslog := flags.Bool("syslog", false, "Log to syslog")
	flags.Parse(args)

	if *flagSyslog {
		if err := system.EnableSyslog(); err != nil {
			log.Println("Error enabling syslog: ", err)
		}
	}

	config, err := netrole.LoadConfig(*flagConfig)
	if err != nil {
		return err
	}

	runner := netrole.NewRunner(network.NewNMProvider(), config)
	runner.DryRun = *flagDryRun
	runner.NoReboot = *flagNoReboot

	return runner.Run()
}

func runInventory() error {
	ifaces, err := network.NewNMProvider().Discover()
	if err != nil {
		return err
	}

	for _, iface := range ifaces {
		link := "no link"
		if iface.LinkPresent {
			link = "link"
		}
		fmt.Printf("%-12v %-9v %-18v %v\n",
			iface.Name, iface.Class, iface.HardwareAddr, link)
	}

	return nil
}

func runHistory(args []string) error {
	flags := flag.NewFlagSet("history", flag.ExitOnError)
	flagConfig := flags.String("config", defaultConfigPath, "Config file path")
	flags.Parse(args)

	config, err := netrole.LoadConfig(*flagConfig)
	if err != nil {
		return err
	}

	if config.JournalPath == "" {
		return fmt.Errorf("no journal path configured")
	}

	journal, err := store.NewJournal(config.JournalPath)
	if err != nil {
		return err
	}
	defer journal.Close()

	records, err := journal.List()
	if err != nil {
		return err
	}

	for _, r := range records {
		fmt.Printf("%v %v %v/%v -> %v/%v (%v)\n",
			r.Time.Format("2006-01-02 15:04:05"), r.Outcome,
			r.OldPrimaryName, r.OldPrimaryAddr,
			r.NewPrimaryName, r.NewPrimaryAddr, r.Hostname)
	}

	return nil
}
