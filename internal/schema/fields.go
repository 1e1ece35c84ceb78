package schema

// DefaultFields is the canonical field table observed across electronic
// filing spec versions. Alias lists collect the name drift seen in the
// per-version header definitions; formatters follow the value encodings
// described in FEC_v300.doc.
func DefaultFields() map[string]Field {
	return map[string]Field{
		"date": {
			Format:  FormatDate,
			Aliases: []string{"date_received", "contribution_date"},
		},
		"candidate_fec_id": {
			Format:  FormatStrip,
			Aliases: []string{"candidate_id_number", "fec_candidate_id_number"},
		},
		"tran_id": {
			Aliases: []string{"transaction_id_number"},
		},
		"occupation": {
			Aliases: []string{"contributor_occupation", "indocc"},
		},
		"contributor_org": {
			Aliases: []string{"contributor_organization_name", "contrib_organization_name"},
		},
		"employer": {
			Aliases: []string{"contributor_employer", "indemp"},
		},
		"amount": {
			Format: FormatAmount,
			Aliases: []string{
				"contribution_amount",
				"amount_received",
				"expenditure_amount",
				"amount_of_expenditure",
			},
		},
	}
}
