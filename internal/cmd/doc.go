// Package cmd contains the Cobra command tree for the yarq CLI.
//
// yarq observes and administers queues shared between processes:
//
//	watch    Render queue progress in the terminal
//	serve    Serve queue progress over HTTP
//	queue    Admin helpers (len, tasks, clear)
//
// Every command resolves its backend the same way: a JSON config file
// (--config), overlaid with YARQ_* environment variables, overlaid with
// the persistent flags (--redis, --data-dir, --fsync). A configured Redis
// address selects the Redis backend; otherwise the embedded store at the
// data directory is used.
package cmd
