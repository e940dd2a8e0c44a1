package util

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler exits on SIGINT/SIGTERM. Progress is persisted
// after every page, so an interrupted run leaves a consistent metadata
// file and viewer on disk; nothing needs to be rolled back.
func SetupInterruptHandler(outputRoot string) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Println("\nInterrupt received. Progress through the last completed page is already saved.")

		RemoveIfEmpty(outputRoot)
		fmt.Println("Exiting due to interrupt.")

		os.Exit(1)
	}()
}

func RemoveIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	if len(entries) == 0 {
		if err := os.Remove(dir); err == nil {
			fmt.Printf("Removed empty output folder: %s\n", dir)
		}
	}
}
