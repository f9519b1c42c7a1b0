// Package purge removes registry entries that point below given directories.
//
// An entry's file:// URI is percent-decoded into a filesystem path and
// compared component-wise with each prefix: /tmp matches /tmp and
// /tmp/a/b, but not /tmp2/a. Entries with any other scheme (trash, mtp,
// sftp, unknown schemes) do not name local paths and are always kept.
//
// Besides directory prefixes a Filter may carry gitignore-style patterns,
// evaluated with pathrules against the absolute decoded path.
package purge
