package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Mindburn-Labs/objgraph/pkg/config"
	"github.com/Mindburn-Labs/objgraph/pkg/contentstore"
	"github.com/Mindburn-Labs/objgraph/pkg/objtree"
	"github.com/Mindburn-Labs/objgraph/pkg/policy"
)

func runBuildCmd(args []string, stdout, stderr io.Writer, cfg *config.Config) int {
	cmd := flag.NewFlagSet("build", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var manifestPath, storePath, policyDir, policyName string
	cmd.StringVar(&manifestPath, "manifest", "", "Path to the JSON tree manifest (required)")
	cmd.StringVar(&storePath, "store", cfg.SQLiteStorePath, "SQLite content store path")
	cmd.StringVar(&policyDir, "policy-dir", ".", "Directory containing policy_<name>.yaml files")
	cmd.StringVar(&policyName, "policy", "", "Policy set name to enforce before building (skipped if empty)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if manifestPath == "" {
		fmt.Fprintln(stderr, "Error: --manifest is required")
		return 2
	}

	m, err := loadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if policyName != "" {
		set, err := config.LoadPolicySet(policyDir, policyName)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading policy set: %v\n", err)
			return 1
		}
		evaluator, err := policy.New(set.Rules)
		if err != nil {
			fmt.Fprintf(stderr, "Error compiling policy set: %v\n", err)
			return 1
		}
		if err := m.checkPolicy(evaluator); err != nil {
			fmt.Fprintf(stderr, "Policy denied manifest: %v\n", err)
			return 1
		}
	}

	ctx := context.Background()
	provider, err := setupObservability(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error initializing observability: %v\n", err)
		return 1
	}
	defer provider.Shutdown(ctx)

	ctx, done := provider.TrackOperation(ctx, "build_tree", attribute.String("manifest", manifestPath))

	tree, err := m.buildTree()
	if err != nil {
		done(err)
		fmt.Fprintf(stderr, "Error building tree: %v\n", err)
		return 1
	}

	store, err := openStore(ctx, storePath)
	if err != nil {
		done(err)
		fmt.Fprintf(stderr, "Error opening store: %v\n", err)
		return 1
	}
	defer store.Close()

	if err := storeTree(ctx, tree, store); err != nil {
		done(err)
		fmt.Fprintf(stderr, "Error storing tree: %v\n", err)
		return 1
	}

	done(nil)
	fmt.Fprintln(stdout, tree.RootHash().String())
	return 0
}

func runImportCmd(args []string, stdout, stderr io.Writer, cfg *config.Config) int {
	return runBuildCmd(args, stdout, stderr, cfg)
}

// storeTree walks tree's internal graph and writes every node's
// canonical bytes into store, keyed by that node's own hash.
func storeTree(ctx context.Context, tree *objtree.ObjectTree[node], store contentstore.Store) error {
	g, rootIdx := tree.AsGraph()

	stack := []objtree.NodeIndex{rootIdx}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := g.Node(idx)
		children := g.Children(idx)

		entries := make([]objtree.NodeEntry, 0, len(children))
		for _, childIdx := range children {
			entries = append(entries, g.Node(childIdx).ToNodeEntry())
		}

		var buf bytes.Buffer
		if err := objtree.NewHashedNodeWithEntries(n, entries).WriteBytes(&buf); err != nil {
			return fmt.Errorf("serialize node %q: %w", n.Name(), err)
		}
		if err := store.Put(ctx, n.Hash, buf.Bytes()); err != nil {
			return fmt.Errorf("store node %q: %w", n.Name(), err)
		}

		stack = append(stack, children...)
	}

	return nil
}
