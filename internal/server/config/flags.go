package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/flagx"
)

var serverFlags = []string{"-a", "-m", "-k", "-d", "-f", "-s", "-n", "-t", "-q", "-o", "-u", "-p", "-b", "-g", "-e", "-y", "-w"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-m string   gRPC health bind address (e.g., ":50051")
//	-k string   storage backend: postgres | firestore | memory
//	-d string   PostgreSQL DSN
//	-f string   Firestore project id
//	-s string   JWT HMAC secret key
//	-n string   Secret Manager version holding the JWT secret
//	-t int      access token validity, minutes
//	-q string   Pub/Sub project id (empty disables notifications)
//	-o string   Pub/Sub topic
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-y int      default history window, days
//	-w string   public API root for links in notifications and exports
//
// Only these flags are picked out of os.Args, so the admin tool can put its
// own subcommand flags next to them.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port of the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "m", config.EndpointAddrGRPC, "address and port of the gRPC health endpoint")
	fs.StringVar(&config.Storage, "k", config.Storage, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.FirestoreProject, "f", config.FirestoreProject, "firestore project")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.SecretKeyName, "n", config.SecretKeyName, "secret manager secret version")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.PubSubProject, "q", config.PubSubProject, "pubsub project")
	fs.StringVar(&config.PubSubTopic, "o", config.PubSubTopic, "pubsub topic")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.IntVar(&config.HistoryDays, "y", config.HistoryDays, "history window (in days)")
	fs.StringVar(&config.PublicURL, "w", config.PublicURL, "public API root")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
