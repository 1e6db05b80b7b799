// Package sysfetch collects a one-shot system readout and prints it.
//
// # Basic Usage
//
// Run loads the configuration, reads every requested field and writes the
// result to standard output:
//
//	err := sysfetch.Run(ctx, sysfetch.Options{ShortUptime: true})
//	if errors.Is(err, sysfetch.ErrInvalidConfig) {
//		log.Fatal(err)
//	}
//
// # Library Use
//
// A Fetcher separates collection from presentation:
//
//	f, err := sysfetch.New(ctx, sysfetch.Options{Show: []string{"kernel", "uptime"}})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	for _, r := range f.Collect(ctx) {
//		if r.OK() {
//			fmt.Println(r.Key.Label(), r.Value)
//		}
//	}
//
// A field that cannot be read never fails the run: it carries its error in
// the Readout and is hidden from the normal listing.
//
// # Remote Hosts
//
// Set Options.Remote to "user@host[:port]" to read a Linux host over SSH.
// Host keys are checked against ~/.ssh/known_hosts.
package sysfetch
