package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rediwo/redi-query/types"
	"github.com/rediwo/redi-query/utils"
)

// Conn is an open MongoDB connection bound to one database
type Conn struct {
	client *mongo.Client
	db     *mongo.Database
	logger utils.Logger
}

// Execute parses the body as a fluent call and dispatches it to the
// collection method. Unsupported methods and missing arguments are
// reported, never silently ignored.
func (c *Conn) Execute(ctx context.Context, body string) (*types.Result, error) {
	start := time.Now()
	defer func() {
		c.logger.LogCommand(body, time.Since(start))
	}()

	call, err := ParseCall(body)
	if err != nil {
		return nil, err
	}

	coll := c.db.Collection(call.Collection)

	switch call.Method {
	case "find":
		opts := options.Find()
		if len(call.Args) > 1 {
			opts.SetProjection(call.Args[1])
		}
		cursor, err := coll.Find(ctx, filterArg(call.Args, 0), opts)
		if err != nil {
			return nil, err
		}
		return cursorResult(ctx, cursor)

	case "findOne":
		opts := options.FindOne()
		if len(call.Args) > 1 {
			opts.SetProjection(call.Args[1])
		}
		var doc bson.D
		err := coll.FindOne(ctx, filterArg(call.Args, 0), opts).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &types.Result{IsSelect: true}, nil
		}
		if err != nil {
			return nil, err
		}
		return docsResult([]bson.D{doc}), nil

	case "insertOne":
		if len(call.Args) < 1 {
			return nil, fmt.Errorf("insertOne requires a document argument")
		}
		res, err := coll.InsertOne(ctx, call.Args[0])
		if err != nil {
			return nil, err
		}
		return &types.Result{
			AffectedRows: 1,
			LastInsertID: idString(res.InsertedID),
			IsSelect:     false,
		}, nil

	case "insertMany":
		if len(call.Args) < 1 {
			return nil, fmt.Errorf("insertMany requires an array of documents")
		}
		docs, ok := call.Args[0].([]any)
		if !ok {
			docs = call.Args
		}
		res, err := coll.InsertMany(ctx, docs)
		if err != nil {
			return nil, err
		}
		return &types.Result{
			AffectedRows: int64(len(res.InsertedIDs)),
			IsSelect:     false,
		}, nil

	case "updateOne", "updateMany":
		if len(call.Args) < 2 {
			return nil, fmt.Errorf("%s requires filter and update arguments", call.Method)
		}
		var res *mongo.UpdateResult
		var err error
		if call.Method == "updateOne" {
			res, err = coll.UpdateOne(ctx, call.Args[0], call.Args[1])
		} else {
			res, err = coll.UpdateMany(ctx, call.Args[0], call.Args[1])
		}
		if err != nil {
			return nil, err
		}
		return &types.Result{
			AffectedRows: res.ModifiedCount,
			IsSelect:     false,
		}, nil

	case "deleteOne", "deleteMany":
		filter := filterArg(call.Args, 0)
		var res *mongo.DeleteResult
		var err error
		if call.Method == "deleteOne" {
			res, err = coll.DeleteOne(ctx, filter)
		} else {
			res, err = coll.DeleteMany(ctx, filter)
		}
		if err != nil {
			return nil, err
		}
		return &types.Result{
			AffectedRows: res.DeletedCount,
			IsSelect:     false,
		}, nil

	case "countDocuments":
		count, err := coll.CountDocuments(ctx, filterArg(call.Args, 0))
		if err != nil {
			return nil, err
		}
		return &types.Result{
			Columns:  []string{"count"},
			Rows:     [][]any{{count}},
			IsSelect: true,
		}, nil

	case "aggregate":
		if len(call.Args) < 1 {
			return nil, fmt.Errorf("aggregate requires a pipeline argument")
		}
		pipeline, ok := call.Args[0].([]any)
		if !ok {
			pipeline = call.Args
		}
		cursor, err := coll.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, err
		}
		return cursorResult(ctx, cursor)

	default:
		return nil, fmt.Errorf("unsupported MongoDB method: %s", call.Method)
	}
}

// Close disconnects the client
func (c *Conn) Close() error {
	return c.client.Disconnect(context.Background())
}

// filterArg returns the i-th argument as a filter document, or an empty
// filter when the argument is absent
func filterArg(args []any, i int) any {
	if i < len(args) && args[i] != nil {
		return args[i]
	}
	return bson.D{}
}

// cursorResult drains a cursor into a normalized result
func cursorResult(ctx context.Context, cursor *mongo.Cursor) (*types.Result, error) {
	defer cursor.Close(ctx)

	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read MongoDB cursor: %w", err)
	}
	return docsResult(docs), nil
}

// docsResult flattens documents into columns and rows. The column set is
// the union of all document keys in first-seen order; documents missing a
// key contribute a nil cell.
func docsResult(docs []bson.D) *types.Result {
	result := &types.Result{IsSelect: true}
	if len(docs) == 0 {
		return result
	}

	seen := make(map[string]bool)
	for _, doc := range docs {
		for _, elem := range doc {
			if !seen[elem.Key] {
				seen[elem.Key] = true
				result.Columns = append(result.Columns, elem.Key)
			}
		}
	}

	for _, doc := range docs {
		byKey := make(map[string]any, len(doc))
		for _, elem := range doc {
			byKey[elem.Key] = elem.Value
		}
		row := make([]any, len(result.Columns))
		for i, col := range result.Columns {
			if val, ok := byKey[col]; ok {
				row[i] = displayValue(val)
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

// displayValue converts BSON values to display-friendly ones: ObjectIDs
// become hex strings, nested documents and arrays become JSON text
func displayValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case bson.D, bson.A:
		if data, err := json.Marshal(jsonValue(val)); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", val)
	default:
		return v
	}
}

// jsonValue recursively converts BSON containers to plain maps and slices
// so they JSON-encode cleanly
func jsonValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case bson.D:
		m := make(map[string]any, len(val))
		for _, elem := range val {
			m[elem.Key] = jsonValue(elem.Value)
		}
		return m
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = jsonValue(item)
		}
		return out
	default:
		return v
	}
}

// idString renders an inserted ID for the normalized result
func idString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", id)
}
