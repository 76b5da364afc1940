// Package redact paints over rectangular regions of an image. A region is
// either filled with a solid color or Gaussian-blurred in place, and a
// placeholder string is drawn over it afterwards.
//
// Fit decides what happens to boxes that fall outside the image or are
// malformed, according to a Policy.
package redact
