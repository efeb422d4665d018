// Package flock provides cross-platform exclusive file locks.
//
// Writers that share a file on disk (for example two buildwatch runs saving
// the history of the same project) serialize through a lock file next to it:
//
//	lock, err := flock.Acquire(ctx, path+".lock", 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	defer func() { _ = lock.Release() }()
package flock
