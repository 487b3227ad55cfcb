// Package view holds the presentation logic shared by the web console and the
// CLI: degrade-to-empty list loading, search filters, empty-state messages,
// dashboard statistics and status badges.
package view
