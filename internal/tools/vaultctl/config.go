package vaultctl

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// Commands understood by Run.
const (
	CmdHashSecret    = "hash-secret"
	CmdGenKey        = "gen-key"
	CmdGenTOTP       = "gen-totp"
	CmdAddService    = "add-service"
	CmdDeleteService = "delete-service"
	CmdImport        = "import"
	CmdServices      = "services"
	CmdStats         = "stats"
)

// Config holds the parsed command line. Flags come before the command:
//
//	vaultctl -url http://localhost:8080 -password ... import -service <id> accounts.txt
type Config struct {
	Command string
	Args    []string

	URL      string
	Password string
	OTP      string
	Token    string

	ServiceID   string
	Name        string
	Icon        string
	Description string
	DryRun      bool

	Secret  string
	Bytes   int
	Issuer  string
	Account string
}

// ParseConfig parses flags into a Config. The first positional argument is
// the command, and the rest are its arguments.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		URL:      envOr("VAULTCTL_URL", "http://localhost:8080"),
		Password: os.Getenv("VAULT_ADMIN_PASSWORD"),
		Token:    os.Getenv("VAULT_TOKEN"),
		Bytes:    32,
		Issuer:   "AccountVault",
		Account:  "admin",
	}

	fs.StringVar(&cfg.URL, "url", cfg.URL, "vault base URL (env VAULTCTL_URL)")
	fs.StringVar(&cfg.Password, "password", cfg.Password, "admin password (env VAULT_ADMIN_PASSWORD)")
	fs.StringVar(&cfg.OTP, "otp", "", "admin TOTP code")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "bearer token with the vault:admin scope (env VAULT_TOKEN)")
	fs.StringVar(&cfg.ServiceID, "service", "", "service ID for import and delete-service")
	fs.StringVar(&cfg.Name, "name", "", "service name for add-service")
	fs.StringVar(&cfg.Icon, "icon", "", "service icon for add-service")
	fs.StringVar(&cfg.Description, "description", "", "service description for add-service")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "import: parse and count without uploading")
	fs.StringVar(&cfg.Secret, "secret", "", "hash-secret: value to hash, read from stdin when empty")
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "gen-key: number of random bytes")
	fs.StringVar(&cfg.Issuer, "issuer", cfg.Issuer, "gen-totp: issuer shown in authenticator apps")
	fs.StringVar(&cfg.Account, "account", cfg.Account, "gen-totp: account name shown in authenticator apps")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, errors.New("missing command")
	}
	cfg.Command, cfg.Args = rest[0], rest[1:]
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
