// Command objtreectl builds, verifies, signs, and stores object trees
// from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Mindburn-Labs/objgraph/pkg/config"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the testable entrypoint: every subcommand takes its own args
// slice plus stdout/stderr, and returns a process exit code instead of
// calling os.Exit directly. Configuration is loaded once here from the
// environment (OBJGRAPH_*) and threaded into every subcommand so none
// of them reach for os.Getenv on their own.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	cfg := config.Load()

	switch args[1] {
	case "build":
		return runBuildCmd(args[2:], stdout, stderr, cfg)
	case "verify":
		return runVerifyCmd(args[2:], stdout, stderr, cfg)
	case "export":
		return runExportCmd(args[2:], stdout, stderr, cfg)
	case "import":
		return runImportCmd(args[2:], stdout, stderr, cfg)
	case "sign":
		return runSignCmd(args[2:], stdout, stderr, cfg)
	case "verify-sign":
		return runVerifySignCmd(args[2:], stdout, stderr, cfg)
	case "store-put":
		return runStorePutCmd(args[2:], stdout, stderr, cfg)
	case "store-get":
		return runStoreGetCmd(args[2:], stdout, stderr, cfg)
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "objtreectl — build, verify, sign, and store content-addressed object trees")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: objtreectl <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build        Build a tree from a JSON manifest, storing every node")
	fmt.Fprintln(w, "  verify       Recompute and verify every node's hash in a stored tree")
	fmt.Fprintln(w, "  export       Dump a stored node's canonical bytes")
	fmt.Fprintln(w, "  import       Populate a store from an existing JSON manifest")
	fmt.Fprintln(w, "  sign         Sign a root hash with an HMAC secret")
	fmt.Fprintln(w, "  verify-sign  Verify a signed root hash token")
	fmt.Fprintln(w, "  store-put    Write raw bytes into a content store under a hash")
	fmt.Fprintln(w, "  store-get    Read raw bytes out of a content store by hash")
	fmt.Fprintln(w, "  help         Show this help")
}
