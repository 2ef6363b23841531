package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	kycadp "p2p-lending-ledger/internal/adapter/kyc"
)

var reUserID = regexp.MustCompile(`^[a-f0-9]{32}$`)

var kycCmd = &cobra.Command{
	Use:   "kyc",
	Short: "Maintain borrower KYC eligibility flags",
	Long: `Sets or clears the eligibility flag read by loan application creation.
Normally written by the KYC workflow; this command is for operators.`,
}

var kycGrantCmd = &cobra.Command{
	Use:   "grant USER_ID",
	Short: "Mark a user as eligible to borrow",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setEligible(cmd, args[0], true) },
}

var kycRevokeCmd = &cobra.Command{
	Use:   "revoke USER_ID",
	Short: "Remove a user's eligibility to borrow",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setEligible(cmd, args[0], false) },
}

func init() {
	rootCmd.AddCommand(kycCmd)
	kycCmd.AddCommand(kycGrantCmd)
	kycCmd.AddCommand(kycRevokeCmd)
}

func setEligible(cmd *cobra.Command, userID string, eligible bool) error {
	if !reUserID.MatchString(userID) {
		return fmt.Errorf("user id must be 32-char lowercase hex, got %q", userID)
	}
	a, err := bootstrap(needs{redis: true})
	if err != nil {
		return err
	}
	defer a.close()

	if err := kycadp.NewRedisStore(a.rdb).SetEligible(cmd.Context(), userID, eligible); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "kyc %s: eligible=%t\n", userID, eligible)
	return nil
}
