/*
Package vaultsdk is a Go client for the account vault HTTP API.

User operations take a bearer token issued by the identity provider the vault
trusts:

	client := vaultsdk.NewClient("https://vault.example.com").WithToken(accessToken)

	acct, err := client.GenerateAccount(ctx, serviceID)
	if errors.Is(err, vaultsdk.ErrQuotaExceeded) {
		// come back tomorrow (UTC)
	}

Admin operations go through an Admin handle carrying the admin password and,
when the vault requires it, a TOTP code. A client holding a token with the
vault:admin scope may leave the password empty:

	admin := client.Admin(password, otp)
	svc, err := admin.AddService(ctx, vaultsdk.AddServiceData{Name: "Alpha"})
	n, err := admin.BulkAddAccounts(ctx, vaultsdk.BulkAddAccountsData{
		ServiceID: svc.ID,
		Text:      "a@x.com:p1\nb@x.com:p2",
	})

A token with the vault:admin scope can also read inventory counts without
the password through AdminStats.

Every failed request returns an *APIError. The predefined errors match on the
error kind with errors.Is.
*/
package vaultsdk
