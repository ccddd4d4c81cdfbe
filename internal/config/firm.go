package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FirmProfile is the issuing business printed on every document.
type FirmProfile struct {
	Name           string      `toml:"name" json:"name"`
	Address        string      `toml:"address" json:"address"`
	GSTIN          string      `toml:"gstin" json:"gstin"`
	State          string      `toml:"state" json:"state"`
	StateCode      string      `toml:"state_code" json:"state_code"`
	Phone          string      `toml:"phone" json:"phone"`
	Email          string      `toml:"email" json:"email"`
	Website        string      `toml:"website" json:"website"`
	DocumentPrefix string      `toml:"document_prefix" json:"document_prefix"`
	Jurisdiction   string      `toml:"jurisdiction" json:"jurisdiction"`
	Bank           BankDetails `toml:"bank" json:"bank"`
}

type BankDetails struct {
	BankName      string `toml:"bank_name" json:"bank_name"`
	AccountNumber string `toml:"account_number" json:"account_number"`
	IFSCCode      string `toml:"ifsc_code" json:"ifsc_code"`
	BranchName    string `toml:"branch_name" json:"branch_name"`
}

// DefaultFirmProfile is used when no profile file is present.
func DefaultFirmProfile() FirmProfile {
	return FirmProfile{
		Name:           "Excel Care Solutions",
		Address:        "Cabin No X, Brindaban Business Centre, Manimala Road, Cochin, Kerala, India - 682024",
		GSTIN:          "32AAMFE1322R1ZB",
		State:          "Kerala",
		StateCode:      "32",
		Phone:          "+91 9446360977",
		Email:          "info@excelcare.us",
		Website:        "www.excelcare.us",
		DocumentPrefix: "ECS",
		Jurisdiction:   "Kerala",
		Bank: BankDetails{
			BankName:      "State Bank of India",
			AccountNumber: "1234567890123456",
			IFSCCode:      "SBIN0001234",
			BranchName:    "Bangalore Main Branch",
		},
	}
}

// LoadFirmProfile decodes a TOML profile over the defaults. A missing file
// yields the defaults unchanged.
func LoadFirmProfile(filename string) (FirmProfile, error) {
	profile := DefaultFirmProfile()
	if filename == "" {
		return profile, nil
	}
	if _, err := toml.DecodeFile(filename, &profile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return profile, nil
		}
		return profile, fmt.Errorf("failed to load firm profile: %w", err)
	}
	if profile.Name == "" || profile.State == "" || profile.DocumentPrefix == "" {
		return profile, errors.New("firm profile requires name, state and document_prefix")
	}
	return profile, nil
}
