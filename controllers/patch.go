package controllers

import (
	"go.mongodb.org/mongo-driver/bson"
)

// changes turns a bound update input into its $set document. Inputs use
// pointer fields tagged bson omitempty, so fields the client did not send
// stay nil and are left out; media fields are tagged bson:"-" and set by
// the PatchImage helpers.
func changes(in any) (bson.M, error) {
	raw, err := bson.Marshal(in)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	return set, nil
}

// applied returns existing as it reads after set is written.
func applied[T any](existing T, set bson.M) (T, error) {
	var out T
	raw, err := bson.Marshal(existing)
	if err != nil {
		return out, err
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return out, err
	}
	for k, v := range set {
		doc[k] = v
	}
	raw, err = bson.Marshal(doc)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(raw, &out)
	return out, err
}
