// Package render draws bubbles in a terminal.
//
// Renderer implements bubble.Renderer with cells as the unit of every
// property. Elements are kept as a small tree of Nodes; Size and the
// measuring Sizer lay the tree out with the same rules Draw uses, so the
// numbers the bubble computes its geometry from match what ends up on
// screen:
//
//  1. A container is its content box plus padding plus one cell of border
//     whenever the border width is positive.
//  2. A tab is its label plus padding and border, and the tab strip lines
//     the visible tabs up left to right.
//  3. A bubble stacks the tab strip over the container. The arrow rows hang
//     below it and are not part of its height.
//
// Markup is parsed with golang.org/x/net/html and flowed into lines:
// block elements start new lines, inline elements add styling, images show
// as their alt text.
package render
