// See bag.go for the Bag/View types and transform.go for the Transform
// pipeline applied to them during parsing and chunk assembly.
package props
