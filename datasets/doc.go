// Package datasets loads the tabular benchmark datasets used in the
// fairness experiments from their standard UCI flat-file formats.
//
// Loaders are strictly file-based: acquisition (download, caching) is the
// caller's concern. Each loader produces a validated BinaryLabelDataset
// whose first feature columns are the protected attributes, with the
// requested primary attribute first, and whose labels are normalized so
// that 1 is the favorable outcome.
package datasets
