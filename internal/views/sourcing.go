package views

import (
	"sort"

	"github.com/alexanderramin/showrunner/internal/domain"
)

// ProposalRow is one supplier's answer to an RFP.
type ProposalRow struct {
	domain.Proposal
	SupplierName string
	Rating       float64
}

// CompareProposals joins the proposals for one RFP to their suppliers,
// cheapest first. Unknown suppliers render as "Unknown".
func CompareProposals(t domain.Tour, suppliers []domain.Supplier, rfpID string) []ProposalRow {
	var out []ProposalRow
	for _, p := range t.Proposals {
		if p.RFPID != rfpID {
			continue
		}
		row := ProposalRow{Proposal: p, SupplierName: "Unknown"}
		for _, s := range suppliers {
			if s.ID == p.SupplierID {
				row.SupplierName = s.Name
				row.Rating = s.Rating
				break
			}
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalCost < out[j].TotalCost })
	return out
}

// ProposalCount is the number of proposals received per RFP ID.
func ProposalCount(t domain.Tour) map[string]int {
	out := make(map[string]int)
	for _, p := range t.Proposals {
		out[p.RFPID]++
	}
	return out
}
