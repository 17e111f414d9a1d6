package cli

import (
	"github.com/spf13/cobra"

	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/reference"
)

// addRefsCommand registers `atomic refs [ELEMENT [FACE]]`, listing the
// curated literature reference records.
func addRefsCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "refs [ELEMENT [FACE]]",
		Short: "List curated literature reference data",
		Long: `List the embedded literature reference records for surface
relaxations. With no arguments every record is shown; an element or an
element/face pair narrows the listing.

Examples:
  atomic refs
  atomic refs Cu
  atomic refs Cu 100`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := reference.NewStore()

			var records []domain.ReferenceRecord
			var err error
			switch len(args) {
			case 2:
				records, err = store.Lookup(cmd.Context(), args[0], args[1])
			default:
				records, err = store.All()
				if len(args) == 1 {
					records = filterByElement(records, args[0])
				}
			}
			if err != nil {
				return err
			}

			if len(records) == 0 {
				cmd.Println("no reference data for that surface")
				return nil
			}
			for _, rec := range records {
				cmd.Println(reference.FormatRecord(rec))
			}
			return nil
		},
	}

	root.AddCommand(cmd)
}

func filterByElement(records []domain.ReferenceRecord, element string) []domain.ReferenceRecord {
	out := records[:0]
	for _, rec := range records {
		if rec.Element == element {
			out = append(out, rec)
		}
	}
	return out
}
