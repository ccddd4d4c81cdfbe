package gst

import "strings"

// State is an Indian state or union territory with its GST state code.
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var States = []State{
	{"01", "Jammu and Kashmir"},
	{"02", "Himachal Pradesh"},
	{"03", "Punjab"},
	{"04", "Chandigarh"},
	{"05", "Uttarakhand"},
	{"06", "Haryana"},
	{"07", "Delhi"},
	{"08", "Rajasthan"},
	{"09", "Uttar Pradesh"},
	{"10", "Bihar"},
	{"11", "Sikkim"},
	{"12", "Arunachal Pradesh"},
	{"13", "Nagaland"},
	{"14", "Manipur"},
	{"15", "Mizoram"},
	{"16", "Tripura"},
	{"17", "Meghalaya"},
	{"18", "Assam"},
	{"19", "West Bengal"},
	{"20", "Jharkhand"},
	{"21", "Odisha"},
	{"22", "Chhattisgarh"},
	{"23", "Madhya Pradesh"},
	{"24", "Gujarat"},
	{"25", "Daman and Diu"},
	{"26", "Dadra and Nagar Haveli"},
	{"27", "Maharashtra"},
	{"28", "Andhra Pradesh"},
	{"29", "Karnataka"},
	{"30", "Goa"},
	{"31", "Lakshadweep"},
	{"32", "Kerala"},
	{"33", "Tamil Nadu"},
	{"34", "Puducherry"},
	{"35", "Andaman and Nicobar Islands"},
	{"36", "Telangana"},
	{"37", "Andhra Pradesh (New)"},
	{"38", "Ladakh"},
}

// LookupState finds a state by name (case-insensitive) or two-digit code.
func LookupState(nameOrCode string) (State, bool) {
	key := strings.TrimSpace(nameOrCode)
	for _, s := range States {
		if s.Code == key || strings.EqualFold(s.Name, key) {
			return s, true
		}
	}
	return State{}, false
}
