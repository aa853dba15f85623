// Package lexical provides an in-memory Okapi BM25 index over the corpus.
//
// Documents and queries are tokenized identically: lowercased and split on
// whitespace. Punctuation stays attached to tokens.
//
// # Parameters
//
// k1=1.5, b=0.75. Terms that occur in half or more of the documents would get
// a zero or negative IDF; those are floored to epsilon times the mean positive
// IDF (epsilon=0.25), or to epsilon when no term has a positive IDF. A document
// score is never negative and a document that contains a query term always
// outscores one that contains none.
//
// The index is immutable after Build and safe for concurrent readers.
package lexical
