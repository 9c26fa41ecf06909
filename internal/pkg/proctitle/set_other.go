//go:build !linux

package proctitle

// Set only rewrites os.Args outside Linux.
func Set(title string) error {
	title, err := normalize(title)
	if err != nil {
		return err
	}
	rewriteArgs(title)
	return nil
}
