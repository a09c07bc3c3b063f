// Package render exports arranged diagrams as images and graph descriptions.
//
// Supported formats:
//
//   - [FormatSVG]: vector image drawn with svgo
//   - [FormatPNG]: raster image drawn with gg
//   - [FormatDOT]: Graphviz DOT text with every shape pinned at its position
//   - [FormatGraphviz]: SVG preview rendered by Graphviz (neato) from the DOT text
//
// SVG and PNG output draw the computed connection routes, so diagrams should
// be routed (see diagram.Diagram.Reroute) before rendering. Connection kinds
// select the line style and arrowheads.
package render
