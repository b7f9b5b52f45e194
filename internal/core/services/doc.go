// Package services implements the driving ports. IndexService moves pages
// from connectors through normalisers and the indexing filter pipeline into
// a document store; DocumentService reads and prunes what was stored.
package services
