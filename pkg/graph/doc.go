/*
Package graph turns an FSM description into an abstract directed-graph description and
encodes that description for the layout engine.

The builder owns the styling rules of a state diagram:

  - an invisible point node named "none" points at the start state with an unlabeled edge;
  - accepting states are double circles, every other state is a circle;
  - edges follow the order of the transition list;
  - the graph is laid out left to right with ideal size, automatic ratio and a single font.

State names pass through label.SubscriptDigits; transition labels pass through
label.SubstituteEpsilon when epsilon mode is enabled. Encoders produce Graphviz DOT text
(EncodeDOT) and Mermaid flowcharts (EncodeMermaid).
*/
package graph
