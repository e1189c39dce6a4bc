package dbrec

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/iamdanielyin/dbrec/adapter"
	"github.com/iamdanielyin/dbrec/result"
)

type AioArgs struct {
	Action string         `msgpack:"action"`
	Data   map[string]any `msgpack:"data"`
}

type AioReply struct {
	Code int            `msgpack:"code"`
	Msg  string         `msgpack:"msg"`
	Data map[string]any `msgpack:"data"`
	Rid  string         `msgpack:"rid"`
}

func newRid() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// convertData re-decodes a loosely typed msgpack payload into dst.
func convertData(src any, dst any) error {
	b, err := msgpack.Marshal(src)
	if err != nil {
		return errors.Wrap(err, "dbrec: encode aio data")
	}
	if err := msgpack.Unmarshal(b, dst); err != nil {
		return errors.Wrap(err, "dbrec: decode aio data")
	}
	return nil
}

func HandleAio(args *AioArgs) *AioReply {
	return DefaultNamespace.HandleAio(args)
}

// HandleAio dispatches one request against ns. Failures set Code to -1 and
// Msg to the error text.
func (ns *Namespace) HandleAio(args *AioArgs) *AioReply {
	reply := &AioReply{
		Code: 0,
		Rid:  newRid(),
	}
	var err error
	defer func() {
		if err != nil {
			reply.Code = -1
			reply.Msg = err.Error()
		}
	}()
	if args == nil {
		err = errors.New("dbrec: empty aio request")
		return reply
	}
	switch args.Action {
	// adapters
	case "available_adapters":
		reply.Data = map[string]any{"adapters": adapter.AvailableAdapters().Map()}
	case "is_available":
		var input struct {
			Adapter string `msgpack:"adapter"`
		}
		if err = convertData(args.Data, &input); err != nil {
			return reply
		}
		reply.Data = map[string]any{"available": adapter.IsAvailable(input.Adapter)}
	case "check":
		var input struct {
			Adapter string          `msgpack:"adapter"`
			Options adapter.Options `msgpack:"options"`
			Prefix  string          `msgpack:"prefix"`
		}
		if err = convertData(args.Data, &input); err != nil {
			return reply
		}
		var msg string
		if e := adapter.Check(input.Adapter, input.Options, input.Prefix); e != nil {
			msg = e.Error()
		}
		reply.Data = map[string]any{"message": msg}
	// connections
	case "connect":
		var input struct {
			Adapter string          `msgpack:"adapter"`
			Options adapter.Options `msgpack:"options"`
			Class   string          `msgpack:"class"`
			Prefix  string          `msgpack:"prefix"`
			Default bool            `msgpack:"default"`
		}
		if err = convertData(args.Data, &input); err != nil {
			return reply
		}
		a, e := adapter.Connect(input.Adapter, input.Options)
		if e != nil {
			err = e
			return reply
		}
		if input.Class == "" {
			input.Class = BaseClass
		}
		ns.SetDB(input.Class, a, input.Prefix, input.Default)
		reply.Data = map[string]any{"keys": ns.Keys()}
	case "has_connection":
		var input struct {
			Class string `msgpack:"class"`
		}
		if err = convertData(args.Data, &input); err != nil {
			return reply
		}
		reply.Data = map[string]any{"has": ns.HasDB(input.Class)}
	case "connection_keys":
		reply.Data = map[string]any{"keys": ns.Keys()}
	// scripts
	case "query":
		var input struct {
			Class  string `msgpack:"class"`
			Table  string `msgpack:"table"`
			SQL    string `msgpack:"sql"`
			Params []any  `msgpack:"params"`
		}
		if err = convertData(args.Data, &input); err != nil {
			return reply
		}
		a, e := ns.DB(input.Class)
		if e != nil {
			err = e
			return reply
		}
		h := ns.resultFactory()(result.Binding{Adapter: a, Table: input.Table})
		var params any
		if len(input.Params) > 0 {
			params = input.Params
		}
		rows, e := h.Execute(input.SQL, params, RowAsArray)
		if e != nil {
			err = e
			return reply
		}
		reply.Data = map[string]any{
			"rows":  rows.Maps(),
			"total": rows.Len(),
		}
	default:
		err = errors.Errorf("dbrec: unknown aio action %q", args.Action)
	}
	return reply
}
