package vaultctl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aussiebroadwan/accountvault/internal/vault/service"
	"github.com/aussiebroadwan/accountvault/pkg/cryptox"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
	"github.com/pquerna/otp/totp"
)

// Run executes cfg.Command, writing results to out. in supplies the secret
// for hash-secret and the credential list for import when no file is given.
func Run(ctx context.Context, cfg Config, out io.Writer, in io.Reader) error {
	if out == nil {
		return errors.New("output is required")
	}

	switch cfg.Command {
	case CmdHashSecret:
		return hashSecret(cfg, out, in)
	case CmdGenKey:
		return genKey(cfg, out)
	case CmdGenTOTP:
		return genTOTP(cfg, out)
	case CmdAddService:
		return addService(ctx, cfg, out)
	case CmdDeleteService:
		return deleteService(ctx, cfg, out)
	case CmdImport:
		return importAccounts(ctx, cfg, out, in)
	case CmdServices:
		return listServices(ctx, cfg, out)
	case CmdStats:
		return stats(ctx, cfg, out)
	}
	return fmt.Errorf("unknown command %q", cfg.Command)
}

func hashSecret(cfg Config, out io.Writer, in io.Reader) error {
	secret := cfg.Secret
	if secret == "" {
		if in == nil {
			return errors.New("secret is required")
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read secret: %w", err)
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	if secret == "" {
		return errors.New("secret is required")
	}

	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}
	// Single quotes keep the $ separators literal in shells and env files.
	_, err = fmt.Fprintf(out, "VAULT_ADMIN_SECRET_HASH='%s'\n", hash)
	return err
}

func genKey(cfg Config, out io.Writer) error {
	if cfg.Bytes < 16 {
		return errors.New("bytes must be at least 16")
	}
	key, err := cryptox.GenerateToken(cfg.Bytes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "VAULT_MASTER_KEY=%s\n", key)
	return err
}

func genTOTP(cfg Config, out io.Writer) error {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      cfg.Issuer,
		AccountName: cfg.Account,
	})
	if err != nil {
		return fmt.Errorf("generate totp secret: %w", err)
	}
	_, err = fmt.Fprintf(out, "VAULT_ADMIN_TOTP_SECRET=%s\n# %s\n", key.Secret(), key.URL())
	return err
}

func admin(cfg Config) *vaultsdk.Admin {
	c := vaultsdk.NewClient(cfg.URL)
	if cfg.Token != "" {
		c = c.WithToken(cfg.Token)
	}
	return c.Admin(cfg.Password, cfg.OTP)
}

func addService(ctx context.Context, cfg Config, out io.Writer) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return errors.New("-name is required")
	}
	svc, err := admin(cfg).AddService(ctx, vaultsdk.AddServiceData{
		Name:        cfg.Name,
		Icon:        cfg.Icon,
		Description: cfg.Description,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "created service %s (%s)\n", svc.ID, svc.Name)
	return err
}

func deleteService(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.ServiceID == "" {
		return errors.New("-service is required")
	}
	if err := admin(cfg).DeleteService(ctx, cfg.ServiceID); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "deleted service %s\n", cfg.ServiceID)
	return err
}

// importAccounts uploads "login:secret" lines from the file named in Args,
// or from in when there is none or it is "-".
func importAccounts(ctx context.Context, cfg Config, out io.Writer, in io.Reader) error {
	if cfg.ServiceID == "" && !cfg.DryRun {
		return errors.New("-service is required")
	}

	src := in
	if len(cfg.Args) > 0 && cfg.Args[0] != "-" {
		f, err := os.Open(cfg.Args[0])
		if err != nil {
			return fmt.Errorf("open accounts file: %w", err)
		}
		defer f.Close()
		src = f
	}
	if src == nil {
		return errors.New("no accounts input")
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read accounts: %w", err)
	}
	text := string(raw)

	pairs := service.ParseBulkCredentials(text)
	if len(pairs) == 0 {
		return errors.New("no valid login:secret lines found")
	}
	if cfg.DryRun {
		_, err := fmt.Fprintf(out, "%d accounts parsed\n", len(pairs))
		return err
	}

	n, err := admin(cfg).BulkAddAccounts(ctx, vaultsdk.BulkAddAccountsData{
		ServiceID: cfg.ServiceID,
		Text:      text,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "imported %d accounts into %s\n", n, cfg.ServiceID)
	return err
}

func listServices(ctx context.Context, cfg Config, out io.Writer) error {
	services, err := admin(cfg).GetServices(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tACTIVE\tAVAILABLE\tTOTAL")
	for _, s := range services {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%d\n", s.ID, s.Name, s.Active, s.Available, s.Total)
	}
	return tw.Flush()
}

func stats(ctx context.Context, cfg Config, out io.Writer) error {
	st, err := admin(cfg).GetStats(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "services\t%d\n", st.TotalServices)
	fmt.Fprintf(tw, "accounts\t%d\n", st.TotalAccounts)
	fmt.Fprintf(tw, "available\t%d\n", st.AvailableAccounts)
	fmt.Fprintf(tw, "users\t%d\n", st.TotalUsers)
	return tw.Flush()
}
